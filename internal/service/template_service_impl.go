package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/repository"
	tmpl "github.com/alexanderramin/officeflow/internal/template"
)

// LoadReport summarizes a directory seed. Skipped is keyed by file path for
// files that failed to load and by template id for templates still in use.
type LoadReport struct {
	Loaded  []string
	Skipped map[string]error
}

type templateService struct {
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	clock     Clock
	observer  UseCaseObserver
}

func NewTemplateService(
	conn db.DBTX,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates: repository.NewSQLiteTemplateRepo(conn),
		uow:       uow,
		clock:     clockOrDefault(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) GetTemplate(ctx context.Context, id string) (*domain.WorkflowTemplate, error) {
	return s.templates.GetByID(ctx, strings.TrimSpace(id))
}

func (s *templateService) ListTemplates(ctx context.Context) ([]*domain.WorkflowTemplate, error) {
	return s.templates.List(ctx)
}

func (s *templateService) ListByCategory(ctx context.Context, category string) ([]*domain.WorkflowTemplate, error) {
	return s.templates.ListByCategory(ctx, category)
}

// PutTemplate validates tpl and stores it, replacing any template with the
// same id. CreatedAt of an existing template is preserved. A template that
// active instances were built from cannot be replaced.
func (s *templateService) PutTemplate(ctx context.Context, tpl *domain.WorkflowTemplate) (_ *domain.WorkflowTemplate, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template": tpl.ID, "node_count": len(tpl.Nodes)}
	defer observe(ctx, s.observer, "put-template", startedAt, fields, &err)

	if err = tmpl.Validate(tpl); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.upsert(ctx, tx, tpl)
	})
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// DeleteTemplate removes a template no active instance refers to.
func (s *templateService) DeleteTemplate(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "delete-template", startedAt, map[string]any{"template": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := ensureUnreferenced(ctx, tx, id); err != nil {
			return err
		}
		return repository.NewSQLiteTemplateRepo(tx).Delete(ctx, id)
	})
}

// LoadDir seeds the catalog from every *.json file in dir. Files that fail
// to parse or validate are reported in the result and do not stop the load.
func (s *templateService) LoadDir(ctx context.Context, dir string) (report *LoadReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir}
	defer observe(ctx, s.observer, "load-templates", startedAt, fields, &err)

	res, err := tmpl.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading templates from %s: %w", dir, err)
	}

	report = &LoadReport{Skipped: res.Skipped}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, tpl := range res.Templates {
			err := s.upsert(ctx, tx, tpl)
			if errors.Is(err, domain.ErrTemplateInUse) {
				report.Skipped[tpl.ID] = err
				continue
			}
			if err != nil {
				return fmt.Errorf("storing template %s: %w", tpl.ID, err)
			}
			report.Loaded = append(report.Loaded, tpl.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(report.Loaded)
	fields["loaded"] = len(report.Loaded)
	fields["skipped"] = len(report.Skipped)
	return report, nil
}

func (s *templateService) upsert(ctx context.Context, tx db.DBTX, tpl *domain.WorkflowTemplate) error {
	repo := repository.NewSQLiteTemplateRepo(tx)
	now := s.clock()
	existing, err := repo.GetByID(ctx, tpl.ID)
	switch {
	case err == nil:
		if err := ensureUnreferenced(ctx, tx, tpl.ID); err != nil {
			return err
		}
		tpl.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrTemplateNotFound):
		tpl.CreatedAt = now
	default:
		return err
	}
	tpl.UpdatedAt = now
	return repo.Upsert(ctx, tpl)
}

func ensureUnreferenced(ctx context.Context, tx db.DBTX, templateID string) error {
	n, err := repository.NewSQLiteInstanceRepo(tx).CountActiveByTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("template %s has %d active instance(s): %w", templateID, n, domain.ErrTemplateInUse)
	}
	return nil
}
