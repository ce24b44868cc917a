package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/service"
)

func drop(ctx context.Context, w http.ResponseWriter) error {

	s := GetServicer(ctx)
	poolName := box.GetUrlParameter(ctx, "poolName")

	err := s.DropPool(poolName)
	if err == service.ErrorPoolNotFound {
		w.WriteHeader(http.StatusNotFound)
		return err
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
