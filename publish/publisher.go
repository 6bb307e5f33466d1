package publish

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/toothbrush/junction/confluence"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ContentService is the part of *confluence.ContentAPI a Publisher needs.
type ContentService interface {
	SpaceKey() string
	GetContent(ctx context.Context, query confluence.GetContentQuery, opts ...confluence.RequestOption) (*confluence.ContentArray, error)
	CreateContent(ctx context.Context, content confluence.CreateContent, opts ...confluence.RequestOption) (*confluence.Content, error)
	UpdateContent(ctx context.Context, id string, content confluence.UpdateContent, opts ...confluence.RequestOption) (*confluence.Content, error)
	DeleteContent(ctx context.Context, id string, opts ...confluence.RequestOption) error
}

var _ ContentService = (*confluence.ContentAPI)(nil)

const DefaultContentType = "page"

// Publisher mirrors markdown files changed on a branch into a Confluence space.  Pages are
// matched by title.
type Publisher struct {
	Content ContentService

	// DocsDir limits publishing to files below this directory of the repository.  Empty means
	// everywhere.
	DocsDir     string
	ContentType string
	// ParentID, if set, is the ancestor of newly created pages.
	ParentID string
	DryRun   bool

	Logger zerolog.Logger
	// Progress receives a progress bar while applying, if set.
	Progress io.Writer
}

type Summary struct {
	Created int
	Updated int
	Renamed int
	Deleted int
	Skipped int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d created, %d updated, %d renamed, %d deleted, %d skipped",
		s.Created, s.Updated, s.Renamed, s.Deleted, s.Skipped)
}

func (p *Publisher) contentType() string {
	if p.ContentType == "" {
		return DefaultContentType
	}
	return p.ContentType
}

// Apply performs ops in order and stops at the first error.  The returned Summary counts what was
// done before that.
func (p *Publisher) Apply(ctx context.Context, ops []Operation) (Summary, error) {
	var summary Summary

	var bar *mpb.Bar
	if p.Progress != nil && len(ops) > 0 {
		progress := mpb.New(mpb.WithOutput(p.Progress), mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(ops)),
			mpb.PrependDecorators(
				decor.Name("publish:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.NewPercentage("%d"),
			),
		)
		defer func() {
			// an incomplete bar would keep Wait blocking
			bar.Abort(false)
			progress.Wait()
		}()
	}

	for _, op := range ops {
		if err := p.apply(ctx, op, &summary); err != nil {
			return summary, fmt.Errorf("publish: %s: %w", op, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}

	return summary, nil
}

func (p *Publisher) apply(ctx context.Context, op Operation, summary *Summary) error {
	if p.DryRun {
		p.Logger.Info().Str("commit", op.Commit.String()).Msgf("dry run: %s", op)
		summary.Skipped++
		return nil
	}

	switch op.Kind {
	case OpUpsert:
		existing, err := p.find(ctx, op.Title)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := p.create(ctx, op); err != nil {
				return err
			}
			summary.Created++
			return nil
		}
		if err := p.update(ctx, existing, op); err != nil {
			return err
		}
		summary.Updated++

	case OpRename:
		existing, err := p.find(ctx, op.PreviousTitle)
		if err != nil {
			return err
		}
		if existing == nil {
			p.Logger.Warn().Msgf("%q not found, creating %q instead", op.PreviousTitle, op.Title)
			if err := p.create(ctx, op); err != nil {
				return err
			}
			summary.Created++
			return nil
		}
		if err := p.update(ctx, existing, op); err != nil {
			return err
		}
		summary.Renamed++

	case OpDelete:
		existing, err := p.find(ctx, op.PreviousTitle)
		if err != nil {
			return err
		}
		if existing == nil {
			p.Logger.Warn().Msgf("%q not found, nothing to delete", op.PreviousTitle)
			summary.Skipped++
			return nil
		}
		if err := p.Content.DeleteContent(ctx, existing.ID); err != nil {
			return err
		}
		p.Logger.Info().Str("id", existing.ID).Msgf("Deleted %q", op.PreviousTitle)
		summary.Deleted++

	default:
		return fmt.Errorf("unknown operation %s", op.Kind)
	}

	return nil
}

func (p *Publisher) find(ctx context.Context, title string) (*confluence.Content, error) {
	result, err := p.Content.GetContent(ctx, confluence.GetContentQuery{
		Type:   p.contentType(),
		Title:  title,
		Expand: "version",
	})
	if err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, nil
	}
	if len(result.Results) > 1 {
		p.Logger.Warn().Msgf("%d pages titled %q, using the first", len(result.Results), title)
	}

	found := result.Results[0]
	if found.Version == nil {
		return nil, fmt.Errorf("page %s came back without a version", found.ID)
	}
	return &found, nil
}

func (p *Publisher) ancestors() []confluence.Ancestor {
	if p.ParentID == "" {
		return nil
	}
	return []confluence.Ancestor{{ID: p.ParentID}}
}

func (p *Publisher) create(ctx context.Context, op Operation) error {
	created, err := p.Content.CreateContent(ctx, confluence.CreateContent{
		Type:      p.contentType(),
		Title:     op.Title,
		Space:     confluence.SpaceRef{Key: p.Content.SpaceKey()},
		Ancestors: p.ancestors(),
		Body:      confluence.StorageBody(op.Body),
	})
	if err != nil {
		return err
	}
	p.Logger.Info().Str("id", created.ID).Msgf("Created %q", op.Title)
	return nil
}

func (p *Publisher) update(ctx context.Context, existing *confluence.Content, op Operation) error {
	body := confluence.StorageBody(op.Body)
	updated, err := p.Content.UpdateContent(ctx, existing.ID, confluence.UpdateContent{
		ID:    existing.ID,
		Type:  p.contentType(),
		Title: op.Title,
		Space: &confluence.SpaceRef{Key: p.Content.SpaceKey()},
		Body:  &body,
		Version: confluence.VersionUpdate{
			Number:  existing.Version.Number + 1,
			Message: fmt.Sprintf("junction: %s", op.Commit),
		},
	})
	if err != nil {
		return err
	}
	p.Logger.Info().Str("id", updated.ID).Msgf("Updated %q to v%d", op.Title, existing.Version.Number+1)
	return nil
}
