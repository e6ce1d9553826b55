package projects

import (
	"context"

	"estate-cms/internal/domain/media"
	"estate-cms/internal/store"

	"github.com/sirupsen/logrus"
)

// Service runs the project write path:
// normalize -> (update: reconcile against stored) -> persist -> drop superseded images.
type Service struct {
	repo       store.Repository[Project]
	normalizer *Normalizer
	images     ImageStore
	log        *logrus.Logger
}

func NewService(repo store.Repository[Project], images ImageStore, log *logrus.Logger) *Service {
	return &Service{
		repo:       repo,
		normalizer: NewNormalizer(images, log),
		images:     images,
		log:        log,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (*Project, error) {
	n, err := s.normalizer.Normalize(ctx, in)
	if err != nil {
		return nil, err
	}

	p := &Project{Content: n.Document}
	if err := s.repo.Create(ctx, p); err != nil {
		s.deleteImages(ctx, n.Created)
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	n, err := s.normalizer.Normalize(ctx, in)
	if err != nil {
		return nil, err
	}

	res := Reconcile(p.Document(), n.Document, n.Partial...)
	p.Content = res.Document
	if err := s.repo.Save(ctx, p); err != nil {
		s.deleteImages(ctx, n.Created)
		return nil, err
	}

	if len(res.Superseded) > 0 {
		s.log.WithFields(logrus.Fields{"project": id, "images": len(res.Superseded)}).Info("removing superseded project images")
	}
	s.deleteImages(ctx, res.Superseded)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteImages(ctx, URLs(p.Document()))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx, store.OldestFirst)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Zones(ctx context.Context) ([]ZoneSummary, error) {
	all, err := s.repo.List(ctx, store.OldestFirst)
	if err != nil {
		return nil, err
	}
	out := make([]ZoneSummary, 0, len(all))
	for _, p := range all {
		out = append(out, p.Zones())
	}
	return out, nil
}

func (s *Service) deleteImages(ctx context.Context, urls []string) {
	media.DeleteAll(ctx, s.images, urls)
}
