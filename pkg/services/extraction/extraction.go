// Package extraction turns a set of rendered report pages into one combined
// material-changes report by fanning batched requests out to an agent.
package extraction

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
)

const (
	DefaultPagesPerCall = 2
	DefaultMaxInFlight  = 10
)

// PageInput is the renderable payload for one page of the source document.
type PageInput struct {
	ImageDataURL string
}

// Request is one batch of pages submitted to the agent as a single call.
type Request struct {
	FileName      string
	PageNumbers   []string
	ImageDataURLs []string
}

// Agent extracts material changes from a batch of page images.
type Agent interface {
	Extract(ctx context.Context, req Request) (domain.MaterialChangesReport, error)
}

// Settings control how the extraction fan-out is shaped.
type Settings struct {
	PagesPerCall int
	MaxInFlight  int64
}

// Extractor batches pages and issues the batches concurrently, bounded by a
// weighted semaphore shared across all requests of a run.
type Extractor struct {
	agent    Agent
	settings Settings
	sem      *semaphore.Weighted
}

func NewExtractor(agent Agent, settings Settings) *Extractor {
	if settings.PagesPerCall <= 0 {
		settings.PagesPerCall = DefaultPagesPerCall
	}
	if settings.MaxInFlight <= 0 {
		settings.MaxInFlight = DefaultMaxInFlight
	}
	return &Extractor{
		agent:    agent,
		settings: settings,
		sem:      semaphore.NewWeighted(settings.MaxInFlight),
	}
}

// ExtractReport fans the pages out in fixed-size batches and concatenates the
// per-batch reports in batch order. The first failing request cancels the
// remaining ones and fails the whole run: there is no retry and no partial
// result.
func (e *Extractor) ExtractReport(
	ctx context.Context,
	fileName string,
	inputByPage map[string]PageInput,
) (domain.MaterialChangesReport, error) {
	logger := zerolog.Ctx(ctx)

	pages := sortedPageNumbers(inputByPage)
	batches := batchPages(pages, e.settings.PagesPerCall)
	logger.Info().
		Str("file", fileName).
		Int("pages", len(pages)).
		Int("batches", len(batches)).
		Msg("starting extraction fan-out")

	reports := make([]domain.MaterialChangesReport, len(batches))
	g, ctx := errgroup.WithContext(ctx)

	for i, batch := range batches {
		req := Request{
			FileName:    fileName,
			PageNumbers: batch,
		}
		for _, page := range batch {
			req.ImageDataURLs = append(req.ImageDataURLs, inputByPage[page].ImageDataURL)
		}

		g.Go(func() error {
			if err := e.sem.Acquire(ctx, 1); err != nil {
				return fmt.Errorf("failed to acquire extraction slot: %w", err)
			}
			defer e.sem.Release(1)

			report, err := e.agent.Extract(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to extract pages %v: %w", req.PageNumbers, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.MaterialChangesReport{}, err
	}

	var combined domain.MaterialChangesReport
	for _, report := range reports {
		combined.MaterialChanges = append(combined.MaterialChanges, report.MaterialChanges...)
	}

	logger.Info().
		Str("file", fileName).
		Int("material_changes", len(combined.MaterialChanges)).
		Msg("extraction completed")

	return combined, nil
}

// sortedPageNumbers orders page identifiers numerically so batches follow the
// document's page order. Non-numeric identifiers sort after numeric ones.
func sortedPageNumbers(inputByPage map[string]PageInput) []string {
	pages := make([]string, 0, len(inputByPage))
	for page := range inputByPage {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool {
		a, errA := strconv.Atoi(pages[i])
		b, errB := strconv.Atoi(pages[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return pages[i] < pages[j]
	})
	return pages
}

func batchPages(pages []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(pages); start += size {
		end := start + size
		if end > len(pages) {
			end = len(pages)
		}
		batches = append(batches, pages[start:end])
	}
	return batches
}
