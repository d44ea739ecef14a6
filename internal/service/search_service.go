package service

import (
	"context"
	"strings"
	"time"

	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/cache"
	"study-assistant-be/pkg/catalog/archive"
	"study-assistant-be/pkg/catalog/openlibrary"
)

type BookCatalog interface {
	Search(ctx context.Context, query string) ([]openlibrary.Book, error)
}

type ResearchCatalog interface {
	Search(ctx context.Context, query string) ([]archive.Paper, archive.Source)
}

type ISearchService interface {
	SearchBooks(ctx context.Context, query string) ([]openlibrary.Book, error)
	SearchResearch(ctx context.Context, query string) ([]archive.Paper, archive.Source, error)
}

type searchService struct {
	books    BookCatalog
	research ResearchCatalog
	cache    cache.Cache
	ttl      time.Duration
	logger   logger.ILogger
}

// NewSearchService fronts both catalogs with c. Pass cache.Nop{} to send
// every request upstream.
func NewSearchService(books BookCatalog, research ResearchCatalog, c cache.Cache, ttl time.Duration, log logger.ILogger) ISearchService {
	if c == nil {
		c = cache.Nop{}
	}
	return &searchService{
		books:    books,
		research: research,
		cache:    c,
		ttl:      ttl,
		logger:   log,
	}
}

func (s *searchService) SearchBooks(ctx context.Context, query string) ([]openlibrary.Book, error) {
	if strings.TrimSpace(query) == "" {
		return []openlibrary.Book{}, nil
	}

	key := cacheKey("books", query)
	var cached []openlibrary.Book
	if s.lookup(ctx, key, &cached) {
		return cached, nil
	}

	books, err := s.books.Search(ctx, query)
	if err != nil {
		s.logger.Warn("SearchService", "Book search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil, apperror.SearchUpstream("book search", err)
	}

	s.store(ctx, key, books)
	return books, nil
}

// SearchResearch returns the papers and where they came from. Placeholder
// results are never cached.
func (s *searchService) SearchResearch(ctx context.Context, query string) ([]archive.Paper, archive.Source, error) {
	if strings.TrimSpace(query) == "" {
		return []archive.Paper{}, archive.SourceNone, nil
	}

	key := cacheKey("papers", query)
	var cached []archive.Paper
	if s.lookup(ctx, key, &cached) {
		return cached, archive.SourceUpstream, nil
	}

	papers, source := s.research.Search(ctx, query)
	if err := ctx.Err(); err != nil {
		return nil, source, err
	}

	switch source {
	case archive.SourceUpstream:
		s.store(ctx, key, papers)
	case archive.SourcePlaceholder:
		s.logger.Warn("SearchService", "Research search exhausted, serving placeholders", map[string]interface{}{
			"query": query,
		})
	}
	return papers, source, nil
}

func (s *searchService) lookup(ctx context.Context, key string, dest interface{}) bool {
	found, err := cache.GetJSON(ctx, s.cache, key, dest)
	if err != nil {
		s.logger.Warn("SearchService", "Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return found
}

func (s *searchService) store(ctx context.Context, key string, value interface{}) {
	if err := cache.SetJSON(ctx, s.cache, key, value, s.ttl); err != nil {
		s.logger.Warn("SearchService", "Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// Both catalogs match case-insensitively, so queries differing only in case
// or surrounding space share an entry.
func cacheKey(catalog, query string) string {
	return catalog + ":" + strings.ToLower(strings.TrimSpace(query))
}
