package usecase

import (
	"context"
	"fmt"

	"decorate/internal/domain"
	"decorate/internal/port"
)

// ProgressCallback is called after each file with the number processed so far.
type ProgressCallback func(processed, total int, currentFile string)

// WalkUseCase applies the decorate pipeline to every selected file below a root.
type WalkUseCase struct {
	walker   port.FileWalker
	decorate *DecorateUseCase
}

// NewWalkUseCase creates a new walk use case.
func NewWalkUseCase(walker port.FileWalker, decorate *DecorateUseCase) *WalkUseCase {
	return &WalkUseCase{
		walker:   walker,
		decorate: decorate,
	}
}

// Walk processes files sequentially in walker order. The first failure stops
// the walk; files already written stay written.
func (u *WalkUseCase) Walk(ctx context.Context, root string, names domain.NameSet, dryRun bool, progress ProgressCallback) (*domain.WalkResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &domain.WalkResult{}

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		fr, err := u.decorate.DecorateFile(f.Path, names, dryRun)
		if err != nil {
			return result, err
		}

		result.Files = append(result.Files, *fr)
		result.FilesScanned++
		if len(fr.Matches) > 0 {
			result.FilesDecorated++
			result.Decorations += len(fr.Matches)
		}

		if progress != nil {
			progress(i+1, len(files), f.Path)
		}
	}

	return result, nil
}
