package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/api/rest/modeldto"
)

func randStringBytes(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func main() {
	a := flag.String("a", "http://localhost:8080", "Server address")
	m := flag.String("m", "http://localhost:3000", "Main site URL pastes belong to")
	n := flag.Int("n", 20, "Number of iterations per stage")
	flag.Parse()
	address := *a
	iterations := *n

	const postJSON = "/api/shortlinks"
	const getLookup = "/api/shortlinks/"
	const ping = "/ping"

	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	// Performing ping loading
	log.Println("Performing ping loading")
	for i := 0; i < iterations; i++ {
		if _, err := client.R().Get(address + ping); err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing issue loading, every paste is issued twice to hit the existing-link path
	log.Println("Performing issue loading")
	var links []modeldto.ResponseShortLink
	for i := 0; i < iterations; i++ {
		req := modeldto.RequestShortLink{URL: *m + "/p/" + randStringBytes(10)}
		for j := 0; j < 2; j++ {
			var resp modeldto.ResponseShortLink
			res, err := client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(req).
				SetResult(&resp).
				Post(address + postJSON)
			if err != nil {
				log.Fatal(err)
			}
			if res.StatusCode() == http.StatusOK && j == 0 {
				links = append(links, resp)
			}
		}
	}
	log.Println("Issued", len(links), "short links")
	time.Sleep(1 * time.Second)

	// Performing resolve loading, the Host header selects the domain rule
	log.Println("Performing resolve loading")
	for _, link := range links {
		res, err := client.R().Get(address + "/" + link.ShortCode)
		if err != nil {
			log.Fatal(err)
		}
		log.Println(link.ShortCode, "->", res.StatusCode(), res.Header().Get("Location"))
	}
	if _, err := client.R().Get(address + "/" + randStringBytes(12)); err != nil {
		log.Fatal(err)
	}
	time.Sleep(2 * time.Second)

	// Performing lookup loading
	log.Println("Performing lookup loading")
	for _, link := range links {
		res, err := client.R().Get(address + getLookup + link.PasteID)
		if err != nil {
			log.Fatal(err)
		}
		var got modeldto.ResponseShortLink
		if err := json.Unmarshal(res.Body(), &got); err == nil {
			log.Println(got.PasteID, "clicks:", got.ClickCount)
		}
	}
}
