package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// readLines decodes a JSON lines body.
func readLines(resp *apitest.Response) []interface{} {
	result := []interface{}{}
	dec := json.NewDecoder(strings.NewReader(resp.BodyString()))
	for {
		var item interface{}
		err := dec.Decode(&item)
		if err == io.EOF {
			return result
		}
		if err != nil {
			panic(err)
		}
		result = append(result, item)
	}
}

func eventually(f func() bool) bool {
	for i := 0; i < 200; i++ {
		if f() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create pool", func(a *biff.A) {
		resp := apiRequest("POST", "/pools").
			WithBodyJson(JSON{
				"name":     "sessions",
				"capacity": 100,
			}).Do()
		Save(resp, "Create pool", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		expectedPool := JSON{
			"name":     "sessions",
			"capacity": 100,
			"groups":   0,
			"live":     0,
		}
		biff.AssertEqualJson(resp.BodyJson(), expectedPool)

		a.Alternative("Create duplicated pool", func(a *biff.A) {
			resp := apiRequest("POST", "/pools").
				WithBodyJson(JSON{"name": "sessions"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Retrieve pool", func(a *biff.A) {
			resp := apiRequest("GET", "/pools/sessions").Do()
			Save(resp, "Retrieve pool", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), expectedPool)
		})

		a.Alternative("List pools", func(a *biff.A) {
			resp := apiRequest("GET", "/pools").Do()
			Save(resp, "List pools", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedPool})
		})

		a.Alternative("Drop pool", func(a *biff.A) {
			resp := apiRequest("POST", "/pools/sessions:drop").Do()
			Save(resp, "Drop pool", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			a.Alternative("Get dropped pool", func(a *biff.A) {
				resp := apiRequest("GET", "/pools/sessions").Do()
				Save(resp, "Get pool - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Add without group", func(a *biff.A) {
			resp := apiRequest("POST", "/pools/sessions:add").
				WithBodyJson(JSON{"payload": JSON{"name": "Alice"}}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Add object", func(a *biff.A) {
			resp := apiRequest("POST", "/pools/sessions:add").
				WithBodyJson(JSON{
					"group":      "user-1",
					"payload":    JSON{"name": "Alice"},
					"decoration": JSON{"role": "admin"},
				}).Do()
			Save(resp, "Add object", `
				Creates an object, pins it and adds it to the pool under `+"`group`"+`.
				The object stays in the pool until it is released and collected.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			body := resp.BodyJsonMap()
			id := body["id"].(string)
			biff.AssertNotEqual(id, "")
			biff.AssertEqual(body["group"], "user-1")

			first := JSON{
				"id":         id,
				"group":      "user-1",
				"payload":    JSON{"name": "Alice"},
				"decoration": JSON{"role": "admin"},
				"pinned":     true,
			}

			a.Alternative("Get group", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/sessions:get").
					WithBodyJson(JSON{"group": "user-1"}).Do()
				Save(resp, "Get group", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(readLines(resp), []JSON{first})
			})

			a.Alternative("Empty decoration is kept apart from none", func(a *biff.A) {
				apiRequest("POST", "/pools/sessions:add").
					WithBodyJson(JSON{
						"group":      "user-2",
						"payload":    JSON{"name": "Dave"},
						"decoration": JSON{},
					}).Do()
				apiRequest("POST", "/pools/sessions:add").
					WithBodyJson(JSON{
						"group":   "user-2",
						"payload": JSON{"name": "Eve"},
					}).Do()

				resp := apiRequest("POST", "/pools/sessions:get").
					WithBodyJson(JSON{"group": "user-2"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				lines := readLines(resp)
				biff.AssertEqual(len(lines), 2)

				dave := lines[0].(JSON)
				decoration, decorated := dave["decoration"]
				biff.AssertTrue(decorated)
				biff.AssertEqual(decoration, JSON{})

				eve := lines[1].(JSON)
				_, decorated = eve["decoration"]
				biff.AssertFalse(decorated)
			})

			a.Alternative("Get unknown group", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/sessions:get").
					WithBodyJson(JSON{"group": "nobody"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.BodyString(), "")
			})

			a.Alternative("Stats", func(a *biff.A) {
				resp := apiRequest("POST", "/pools/sessions:stats").Do()
				Save(resp, "Pool stats", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"groups":     1,
					"live":       1,
					"slots":      1,
					"tombstones": 0,
					"pending":    0,
					"reclaimed":  0,
				})
			})

			a.Alternative("Get object", func(a *biff.A) {
				resp := apiRequest("GET", "/objects/"+id).Do()
				Save(resp, "Get object", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.BodyJsonMap()["id"], id)
			})

			a.Alternative("Find", func(a *biff.A) {
				apiRequest("POST", "/pools/sessions:add").
					WithBodyJson(JSON{
						"group":      "user-1",
						"payload":    JSON{"name": "Bob"},
						"decoration": JSON{"role": "user", "level": 3},
					}).Do()
				apiRequest("POST", "/pools/sessions:add").
					WithBodyJson(JSON{
						"group":   "user-1",
						"payload": JSON{"name": "Carol"},
					}).Do()

				a.Alternative("By decoration", func(a *biff.A) {
					resp := apiRequest("POST", "/pools/sessions:find").
						WithBodyJson(JSON{
							"group":  "user-1",
							"filter": JSON{"role": "user"},
						}).Do()
					Save(resp, "Find by decoration", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					lines := readLines(resp)
					biff.AssertEqual(len(lines), 1)
					biff.AssertEqual(lines[0].(JSON)["payload"], JSON{"name": "Bob"})
				})

				a.Alternative("Skip and limit", func(a *biff.A) {
					resp := apiRequest("POST", "/pools/sessions:find").
						WithBodyJson(JSON{
							"group": "user-1",
							"skip":  1,
							"limit": 1,
						}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					lines := readLines(resp)
					biff.AssertEqual(len(lines), 1)
					biff.AssertEqual(lines[0].(JSON)["payload"], JSON{"name": "Bob"})
				})

				a.Alternative("Without decoration keeps add order", func(a *biff.A) {
					resp := apiRequest("POST", "/pools/sessions:get").
						WithBodyJson(JSON{"group": "user-1"}).Do()

					names := []interface{}{}
					for _, line := range readLines(resp) {
						entry := line.(JSON)
						names = append(names, entry["payload"].(JSON)["name"])
						if entry["payload"].(JSON)["name"] == "Carol" {
							_, decorated := entry["decoration"]
							biff.AssertFalse(decorated)
						}
					}
					biff.AssertEqual(names, []interface{}{"Alice", "Bob", "Carol"})
				})
			})

			a.Alternative("Release and collect", func(a *biff.A) {
				resp := apiRequest("POST", "/objects/"+id+":release").Do()
				Save(resp, "Release object", `
					Drops the pin. The entry disappears from the pool after the next
					garbage collection has been observed by the pool.
				`)
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				collected := eventually(func() bool {
					apiRequest("POST", "/gc").Do().BodyClose()
					resp := apiRequest("POST", "/pools/sessions:get").
						WithBodyJson(JSON{"group": "user-1"}).Do()
					return resp.BodyString() == ""
				})
				biff.AssertTrue(collected)

				resp = apiRequest("POST", "/pools/sessions:stats").Do()
				stats := resp.BodyJsonMap()
				biff.AssertEqual(stats["live"], json.Number("0"))
				biff.AssertEqual(stats["groups"], json.Number("0"))
				biff.AssertEqual(stats["reclaimed"], json.Number("1"))

				a.Alternative("Release again", func(a *biff.A) {
					resp := apiRequest("POST", "/objects/"+id+":release").Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})
			})
		})
	})

	a.Alternative("Add to unknown pool", func(a *biff.A) {
		resp := apiRequest("POST", "/pools/unknown:add").
			WithBodyJson(JSON{"group": "user-1"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})
}
