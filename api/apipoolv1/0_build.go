package apipoolv1

import (
	"github.com/fulldump/box"
)

func BuildV1Pool(v1 *box.R) *box.R {

	pools := v1.Resource("/pools").
		WithActions(
			box.Get(listPools),
			box.Post(createPool),
		)

	v1.Resource("/pools/{poolName}").
		WithActions(
			box.Get(getPool),
			box.ActionPost(add),
			box.ActionPost(get),
			box.ActionPost(find),
			box.ActionPost(stats),
			box.ActionPost(drop),
		)

	v1.Resource("/objects/{objectId}").
		WithActions(
			box.Get(getObject),
			box.ActionPost(release),
		)

	v1.Resource("/gc").
		WithActions(
			box.Post(collect),
		)

	return pools
}
