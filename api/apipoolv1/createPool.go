package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/weakpool/service"
)

type createPoolRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func createPool(ctx context.Context, w http.ResponseWriter, input *createPoolRequest) (*service.PoolSummary, error) {

	s := GetServicer(ctx)

	pool, err := s.CreatePool(input.Name, input.Capacity)
	if err == service.ErrorPoolAlreadyExists {
		w.WriteHeader(http.StatusConflict)
		return nil, err
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return pool, nil
}
