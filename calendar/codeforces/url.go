package codeforces

import (
	"fmt"
	"net/url"
	"strings"
)

const Label = "codeforces"
const LabelShort = "cf"

const BaseURL = "https://codeforces.com"

func ValidType(typ string) bool {
	typ = strings.ToLower(typ)
	return typ == Label || typ == LabelShort
}

// APIURL points at the public contest.list method.
// https://codeforces.com/apiHelp/methods#contest.list
func APIURL() (*url.URL, error) {
	return url.ParseRequestURI(BaseURL + "/api/contest.list")
}

func ContestURL(id int64) string {
	return fmt.Sprintf("%s/contest/%d", BaseURL, id)
}
