package weakpool_test

import (
	"fmt"
	"runtime"

	"github.com/fulldump/weakpool/weakpool"
)

type Conn struct {
	Addr string
}

func ExamplePool() {
	pool := weakpool.New[string, Conn, string]()

	a := &Conn{Addr: "10.0.0.1:443"}
	b := &Conn{Addr: "10.0.0.2:443"}
	pool.AddDecorated("tenant-1", a, "primary")
	pool.Add("tenant-1", b)
	pool.Add("tenant-1", a) // already there

	for _, e := range pool.Get("tenant-1") {
		fmt.Println(e.Object.Addr, e.Decoration, e.Decorated)
	}
	fmt.Println(pool)

	runtime.KeepAlive(a)
	runtime.KeepAlive(b)

	// Output:
	// 10.0.0.1:443 primary true
	// 10.0.0.2:443  false
	// weakpool[groups=1 live=2]
}
