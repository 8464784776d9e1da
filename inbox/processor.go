package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/service"

	"github.com/google/uuid"
)

// SummarySuffix is appended to the guide's base name for the stored summary
const SummarySuffix = ".summary.txt"

var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// OwnerID is the storage owner under which inbox summaries are filed
var OwnerID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("guidedigest:inbox"))

// Processor summarizes a guide file and stores the result
type Processor struct {
	summary *service.SummaryService
	exports *service.ExportService
	log     logger.Logger
	request service.SummarizeRequest
}

// NewProcessor creates a processor. req carries the style, language and
// model used for every file; empty fields take the service defaults.
func NewProcessor(summary *service.SummaryService, exports *service.ExportService, req service.SummarizeRequest, l logger.Logger) *Processor {
	return &Processor{
		summary: summary,
		exports: exports,
		log:     l,
		request: req,
	}
}

// SummaryName returns the stored filename for the guide at path
func SummaryName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + SummarySuffix
}

// Handle reads path, summarizes it and stores <name>.summary.txt. It matches
// the Handler signature.
func (p *Processor) Handle(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}

	req := p.request
	req.Document = models.Document{
		Text:     string(data),
		Source:   models.SourceInbox,
		Filename: filepath.Base(path),
	}

	summary, err := p.summary.SummarizeText(ctx, req.Document.Text, req)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", path, err)
	}

	stored, err := p.exports.SaveText(ctx, OwnerID, SummaryName(path), summary.Text)
	if err != nil {
		return fmt.Errorf("store summary for %s: %w", path, err)
	}

	p.log.Info(ctx, "Summarized %s (%d -> %d words) into %s",
		filepath.Base(path), summary.Stats.InputWords, summary.Stats.OutputWords, stored)
	return nil
}
