package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/api/apipoolv1"
	"github.com/fulldump/weakpool/service"
)

func Build(s service.Servicer, version string) *box.B {

	b := box.NewBox()

	v1 := b.Resource("/v1")
	v1.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
		injectServicer(s),
	)
	apipoolv1.BuildV1Pool(v1)

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apipoolv1.SetServicer(ctx, s))
		}
	}
}
