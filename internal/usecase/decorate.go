package usecase

import (
	"fmt"
	"log/slog"

	"decorate/internal/domain"
	"decorate/internal/port"
)

// DecorateUseCase runs the load, transform, save pipeline for one file.
type DecorateUseCase struct {
	names    port.NameLoader
	store    port.SourceStore
	rewriter port.Rewriter
	logger   *slog.Logger
}

// NewDecorateUseCase creates a new decorate use case.
func NewDecorateUseCase(
	names port.NameLoader,
	store port.SourceStore,
	rewriter port.Rewriter,
	logger *slog.Logger,
) *DecorateUseCase {
	return &DecorateUseCase{
		names:    names,
		store:    store,
		rewriter: rewriter,
		logger:   logger,
	}
}

// LoadNames loads the name list. Any failure is fatal to the run.
func (u *DecorateUseCase) LoadNames(path string) (domain.NameSet, error) {
	names, err := u.names.LoadNames(path)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("loaded name list", "path", path, "names", names.Len())
	return names, nil
}

// DecorateFile rewrites path in place. With dryRun set nothing is written.
// The source is read completely before any write starts.
func (u *DecorateUseCase) DecorateFile(path string, names domain.NameSet, dryRun bool) (*domain.FileResult, error) {
	lines, err := u.store.Load(path)
	if err != nil {
		return nil, err
	}

	out, matches := u.rewriter.Rewrite(lines, names)
	if len(out) != len(lines) {
		return nil, fmt.Errorf("rewrite of %s changed line count from %d to %d", path, len(lines), len(out))
	}

	result := &domain.FileResult{
		Path:    path,
		Lines:   len(lines),
		Matches: matches,
	}

	for _, m := range matches {
		u.logger.Debug("decorated", "path", path, "line", m.Line, "name", m.Name)
	}

	if dryRun {
		return result, nil
	}

	if err := u.store.Save(path, out); err != nil {
		return nil, err
	}
	result.Written = true
	u.logger.Debug("wrote source", "path", path, "lines", len(out), "decorated", len(matches))

	return result, nil
}
