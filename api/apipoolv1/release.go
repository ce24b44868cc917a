package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/database"
)

// release drops the pin on an object. The pool entry is swept once the
// runtime has reclaimed it.
func release(ctx context.Context, w http.ResponseWriter) (*database.Object, error) {

	s := GetServicer(ctx)
	objectId := box.GetUrlParameter(ctx, "objectId")

	object, err := s.Release(objectId)
	if err != nil {
		w.WriteHeader(statusFor(err))
		return nil, err
	}

	return object, nil
}
