package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/database"
	"github.com/fulldump/weakpool/service"
)

func add(ctx context.Context, w http.ResponseWriter, input *service.AddInput) (*database.Object, error) {

	s := GetServicer(ctx)
	poolName := box.GetUrlParameter(ctx, "poolName")

	object, err := s.Add(poolName, input)
	if err != nil {
		w.WriteHeader(statusFor(err))
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return object, nil
}

func statusFor(err error) int {
	switch err {
	case service.ErrorInvalidGroup:
		return http.StatusBadRequest
	case service.ErrorPoolNotFound, service.ErrorObjectNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
