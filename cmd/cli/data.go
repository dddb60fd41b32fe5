package main

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/IdealAdarsh9/Aadhaar-risk-engine/pkg/risk"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	enrolFormField = "enrolment"
	demoFormField  = "demographic"
	bioFormField   = "biometric"
)

// batchStore holds the scored table of the most recent upload. One batch at
// a time, nothing survives a restart. The mutex only guards against gin's
// concurrent handlers, the batch semantics stay single-user.
type batchStore struct {
	mu  sync.RWMutex
	res *risk.Result
}

func (s *batchStore) set(res *risk.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = res
}

func (s *batchStore) get() (*risk.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.res, s.res != nil
}

var store batchStore

// batchUploadHandler ingests one multipart upload carrying the three
// datasets and replaces the current scored table.
func batchUploadHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("invalid multipart form: %v", err),
		})
		return
	}

	var srcs [3][]risk.Source
	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()

	for i, field := range []string{enrolFormField, demoFormField, bioFormField} {
		headers := form.File[field]
		if len(headers) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("all three datasets are required, missing: %s", field),
			})
			return
		}
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("failed to open uploaded file %s: %v", fh.Filename, err),
				})
				return
			}
			closers = append(closers, f)
			srcs[i] = append(srcs[i], risk.Source{Name: fh.Filename, Reader: f})
		}
	}

	res, err := processBatch(srcs[0], srcs[1], srcs[2])
	if err != nil {
		log.Errorf("batch processing failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("cannot process batch: %v", err),
		})
		return
	}

	store.set(res)
	c.JSON(http.StatusOK, risk.Summarize(res))
}

func highRiskHandler(c *gin.Context) {
	res, ok := store.get()
	if !ok {
		noBatch(c)
		return
	}

	limit := risk.HighRiskViewLimit
	if cfg != nil && cfg.HighRiskLimit > 0 {
		limit = cfg.HighRiskLimit
	}

	c.JSON(http.StatusOK, risk.TopHighRisk(res.Records, limit))
}

func distributionHandler(c *gin.Context) {
	res, ok := store.get()
	if !ok {
		noBatch(c)
		return
	}
	c.JSON(http.StatusOK, risk.Distribution(res.Records))
}

func recordsHandler(c *gin.Context) {
	res, ok := store.get()
	if !ok {
		noBatch(c)
		return
	}

	pin := c.Query("pincode")
	if pin == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "pincode query parameter required",
		})
		return
	}

	c.JSON(http.StatusOK, risk.FilterPincode(res.Records, pin))
}

func downloadHandler(c *gin.Context) {
	res, ok := store.get()
	if !ok {
		noBatch(c)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", risk.OutputFileName))

	if err := risk.WriteCSV(c.Writer, res); err != nil {
		log.Errorf("failed to stream CSV download: %v", err)
	}
}

func noBatch(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "no batch processed",
	})
}
