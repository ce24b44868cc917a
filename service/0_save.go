package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
)

// Save renders an acceptance request/response as a markdown example when
// WEAKPOOL_EXAMPLES_PATH is set.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("WEAKPOOL_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	query := request.URL.RawQuery
	if query != "" {
		query = "?" + query
	}

	s := "# " + title + "\n"
	s += cropTabs(description) + "\n"

	s += "Curl example:\n\n```sh\n"
	method := ""
	if request.Method != "GET" {
		method = "-X " + request.Method + " "
	}
	s += "curl " + method + "\"http://localhost:8080" + request.URL.Path + query + "\""
	requestBody := formatJSON(response.BodyRequestString())
	if requestBody != "" {
		s += " \\\n-d '" + requestBody + "'"
	}
	s += "\n```\n\n"

	s += "HTTP request/response example:\n\n```http\n"
	s += request.Method + " " + request.URL.Path + query + " " + request.Proto + "\n"
	s += "Host: localhost:8080\n\n"
	s += requestBody + "\n\n"

	s += response.Proto + " " + response.Status + "\n"
	headerKeys := []string{}
	for k := range response.Header {
		if k == "Date" {
			continue
		}
		headerKeys = append(headerKeys, k)
	}
	sort.Strings(headerKeys)
	for _, k := range headerKeys {
		for _, v := range response.Header[k] {
			s += k + ": " + v + "\n"
		}
	}
	s += "\n" + formatJSON(response.BodyString()) + "\n```\n"

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	fmt.Println("Saving", p)
	err := os.WriteFile(p, []byte(s), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

func formatJSON(body string) string {

	var i interface{}

	err := json.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	b, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return body
	}

	return string(b)
}

// cropTabs removes the common tab indentation of a raw string literal.
func cropTabs(d string) string {
	lines := strings.Split(d, "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || c < minTabs {
			minTabs = c
		}
	}
	if minTabs <= 0 {
		return strings.TrimSpace(d)
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
