package storefront

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/curation"
	"github.com/saanjh/storefront/internal/domain/reveal"
	"github.com/saanjh/storefront/internal/infrastructure/logger"
	"github.com/saanjh/storefront/internal/infrastructure/telemetry"
)

// Date layouts for journal pages
const (
	ListingDateLayout = "Jan 02, 2006"
	ArticleDateLayout = "January 02, 2006"
)

// ArticleUnavailableNotice replaces an article that failed to load
const ArticleUnavailableNotice = "This article is not available right now."

// Journal lists every article, newest first. Undated articles go last.
func (s *PageService) Journal(ctx context.Context) *JournalPage {
	ctx, span := telemetry.StartSpan(ctx, "storefront.Journal", trace.SpanKindInternal,
		telemetry.AttrPage.String(PageJournal))
	articles, err := content.GetAll[content.JournalArticle](ctx, s.data, content.CollectionJournalArticles)
	telemetry.EndSpan(span, err)
	s.record(ctx, PageJournal, err)

	page := &JournalPage{Articles: []ArticleCard{}}
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Journal unavailable, rendering empty listing", zap.Error(err))
		page.Degraded = true
		return page
	}

	for _, a := range articles {
		s.warnUnreadableDate(ctx, a)
	}
	for i, a := range curation.Apply(articles, curation.JournalNewestFirst()) {
		page.Articles = append(page.Articles, ArticleCard{
			JournalArticle: a,
			Date:           formatDate(a.PublishDate, ListingDateLayout),
			Path:           "/journal/" + a.ID,
			Reveal:         reveal.Staggered(i, CardStagger),
		})
	}
	return page
}

// Article loads one article. A missing article returns content.ErrNotFound;
// every other failure yields a page carrying the unavailable notice.
func (s *PageService) Article(ctx context.Context, id string) (*ArticlePage, error) {
	ctx, span := telemetry.StartSpan(ctx, "storefront.Article", trace.SpanKindInternal,
		telemetry.AttrPage.String(PageArticle), attribute.String("journal.article_id", id))
	article, err := content.GetByID[content.JournalArticle](ctx, s.data, content.CollectionJournalArticles, id)
	telemetry.EndSpan(span, err)

	if errors.Is(err, content.ErrNotFound) {
		s.metrics.RecordPageLoad(ctx, PageArticle, telemetry.OutcomeNotFound)
		return nil, err
	}
	s.record(ctx, PageArticle, err)
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Journal article unavailable",
			zap.String("article_id", id), zap.Error(err))
		return &ArticlePage{Unavailable: true, Notice: ArticleUnavailableNotice}, nil
	}

	s.warnUnreadableDate(ctx, *article)
	return &ArticlePage{
		Article: article,
		Date:    formatDate(article.PublishDate, ArticleDateLayout),
	}, nil
}

// warnUnreadableDate logs an article whose publishDate could not be read.
// The article is still shown and orders as undated.
func (s *PageService) warnUnreadableDate(ctx context.Context, a content.JournalArticle) {
	if !a.PublishDate.Invalid() {
		return
	}
	logger.WithLogger(ctx, s.logger).Warn("Unreadable journal publish date, treating as undated",
		zap.String("article_id", a.ID),
		zap.String("publish_date", a.PublishDate.Unparsed),
	)
}

func formatDate(t *content.FlexTime, layout string) string {
	tp := t.TimePtr()
	if tp == nil {
		return ""
	}
	return tp.Format(layout)
}
