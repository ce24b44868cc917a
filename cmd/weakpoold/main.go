package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/weakpool/bootstrap"
	"github.com/fulldump/weakpool/configuration"
)

var banner = `
                     _                      _ 
__      _____  __ _| | ___ __   ___   ___ | |
\ \ /\ / / _ \/ _' | |/ / '_ \ / _ \ / _ \| |
 \ V  V /  __/ (_| |   <| |_) | (_) | (_) | |
  \_/\_/ \___|\__,_|_|\_\ .__/ \___/ \___/|_|
                        |_|   version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(&c)
	start()
}
