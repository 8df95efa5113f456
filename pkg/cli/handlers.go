package cli

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/mchmarny/repwatch/pkg/config"
	"github.com/mchmarny/repwatch/pkg/ingest"
	"github.com/mchmarny/repwatch/pkg/report"
	"github.com/mchmarny/repwatch/pkg/score"
	"github.com/mchmarny/repwatch/pkg/table"
)

const (
	maxUploadBytes int64 = 32 << 20

	mentionsField      = "mentions"
	scoresField        = "scores"
	mentionsSheetField = "mentions_sheet"
	scoresSheetField   = "scores_sheet"
)

var (
	errInvalidUpload = errors.New("invalid upload")
	errInvalidQuery  = errors.New("invalid query")
)

type dimensionInfo struct {
	Name   score.Dimension `json:"name"`
	Label  string          `json:"label"`
	Column string          `json:"column"`
}

func reportAPIHandler(cfg *config.Config, m *serverMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		mt, err := readUpload(c, mentionsField, c.PostForm(mentionsSheetField))
		if err != nil {
			abortWithError(c, m, err)
			return
		}

		st, err := readUpload(c, scoresField, c.PostForm(scoresSheetField))
		if err != nil {
			abortWithError(c, m, err)
			return
		}

		in, err := ingest.Parse(mt, st, cfg.IngestOptions())
		if err != nil {
			abortWithError(c, m, err)
			return
		}

		r, err := report.Build(in.Mentions, in.Scores, cfg.Weights())
		if err != nil {
			abortWithError(c, m, err)
			return
		}

		m.MentionsScored.Add(float64(len(r.Mentions)))
		c.JSON(http.StatusOK, r)
	}
}

func mentionsAPIHandler(cfg *config.Config, m *serverMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := time.Parse(dayLayout, c.Query("date"))
		if err != nil {
			abortWithError(c, m, errors.Wrapf(errInvalidQuery, "date must be %s", dayLayout))
			return
		}

		by, ok := score.ParseSortKey(c.Query("sort"))
		if !ok {
			abortWithError(c, m, errors.Wrapf(errInvalidQuery, "unsupported sort key: %s", c.Query("sort")))
			return
		}

		mt, err := readUpload(c, mentionsField, c.PostForm(mentionsSheetField))
		if err != nil {
			abortWithError(c, m, err)
			return
		}

		set, err := ingest.Mentions(mt, cfg.IngestOptions())
		if err != nil {
			abortWithError(c, m, err)
			return
		}

		list, err := score.Enrich(set, cfg.Weights())
		if err != nil {
			abortWithError(c, m, err)
			return
		}
		m.MentionsScored.Add(float64(len(list)))

		found := score.MentionsOnDate(list, day, by)
		c.JSON(http.StatusOK, gin.H{
			"date":     day.Format(dayLayout),
			"sort":     by,
			"count":    len(found),
			"mentions": found,
		})
	}
}

func dimensionsAPIHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := make([]dimensionInfo, 0, len(score.Dimensions))
		for _, d := range score.Dimensions {
			list = append(list, dimensionInfo{Name: d, Label: d.Label(), Column: d.Column()})
		}
		w := cfg.Weights()
		c.JSON(http.StatusOK, gin.H{
			"dimensions":            list,
			"neutral_value":         score.NeutralValue,
			"source_weights":        w.Sources,
			"default_source_weight": w.Default,
		})
	}
}

func readUpload(c *gin.Context, field, sheet string) (*table.Table, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.Wrapf(err, "reading %s upload", field)
		}
		return nil, errors.Wrapf(errInvalidUpload, "missing %s file: %v", field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s upload", field)
	}
	defer f.Close()

	t, err := table.ReadFrom(f, fh.Filename, sheet)
	if err != nil {
		return nil, errors.Wrapf(errInvalidUpload, "%s file %s: %v", field, fh.Filename, err)
	}
	return t, nil
}

func abortWithError(c *gin.Context, m *serverMetrics, err error) {
	status, reason := classifyError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("reason", reason).Msg("request rejected")
		m.InputErrors.WithLabelValues(reason).Inc()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func classifyError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case score.IsDataError(err):
		return http.StatusBadRequest, "data"
	case errors.Is(err, errInvalidUpload):
		return http.StatusBadRequest, "upload"
	case errors.Is(err, errInvalidQuery):
		return http.StatusBadRequest, "query"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
