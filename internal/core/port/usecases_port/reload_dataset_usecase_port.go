package usecases_port

import "context"

type ReloadDatasetUseCase interface {
	Execute(ctx context.Context) error
}
