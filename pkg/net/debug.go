package net

import (
	"net/http"
	"net/http/httputil"

	"github.com/rs/zerolog/log"
)

func PrintHTTPResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if respDump, err := httputil.DumpResponse(resp, false); err == nil {
		log.Debug().Msgf("%s", respDump)
	}
}
