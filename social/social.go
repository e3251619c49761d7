// Package social checks whether a username exists on well-known platforms by
// probing the public profile URL.
package social

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"nexrecon/netutil"
)

// Platform is one site to probe; URL contains a %s placeholder for the
// username.
type Platform struct {
	Name string
	URL  string
}

// DefaultPlatforms is the probe list of the toolkit.
var DefaultPlatforms = []Platform{
	{"Facebook", "https://www.facebook.com/%s"},
	{"Twitter/X", "https://www.twitter.com/%s"},
	{"Instagram", "https://www.instagram.com/%s"},
	{"LinkedIn", "https://www.linkedin.com/in/%s"},
	{"GitHub", "https://www.github.com/%s"},
	{"Pinterest", "https://www.pinterest.com/%s"},
	{"Tumblr", "https://www.tumblr.com/%s"},
	{"Youtube", "https://www.youtube.com/@%s"},
	{"SoundCloud", "https://soundcloud.com/%s"},
	{"Snapchat", "https://www.snapchat.com/add/%s"},
	{"TikTok", "https://www.tiktok.com/@%s"},
	{"Behance", "https://www.behance.net/%s"},
	{"Medium", "https://www.medium.com/@%s"},
	{"Quora", "https://www.quora.com/profile/%s"},
	{"Flickr", "https://www.flickr.com/people/%s"},
	{"Twitch", "https://www.twitch.tv/%s"},
	{"Dribbble", "https://www.dribbble.com/%s"},
	{"Reddit", "https://www.reddit.com/user/%s"},
	{"Telegram", "https://www.telegram.me/%s"},
	{"We Heart It", "https://weheartit.com/%s"},
	{"Spotify", "https://open.spotify.com/user/%s"},
	{"Mastodon", "https://mastodon.social/@%s"},
}

// Hit is a platform where the username appears to exist.
type Hit struct {
	Platform string
	URL      string
	Title    string // page title, a weak confirmation signal
}

// Results groups the outcome of a search.
type Results struct {
	Username string
	Found    []Hit
	NotFound []string
}

var usernameRe = regexp.MustCompile(`^[\w.]+$`)

// ValidUsername reports whether the username is safe for all platforms.
// Rejection is advisory only; the original proceeds with a warning.
func ValidUsername(u string) bool {
	return usernameRe.MatchString(u)
}

// searchWorkers bounds the simultaneous profile probes.
const searchWorkers = 8

// Search probes every platform for the username, at most searchWorkers
// requests in flight. A failed request simply counts as not found. The
// progress callback fires once per completed probe, serialised.
func Search(c *netutil.Client, username string, platforms []Platform, progress func(i, total int, name string)) *Results {
	res := &Results{Username: username}
	hits := make([]*Hit, len(platforms))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	sem := make(chan struct{}, searchWorkers)
	for i, p := range platforms {
		i, p := i, p
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			hit := probe(c, username, p)
			mu.Lock()
			hits[i] = hit
			done++
			if progress != nil {
				progress(done, len(platforms), p.Name)
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	// report in platform-list order regardless of completion order
	for i, p := range platforms {
		if hits[i] != nil {
			res.Found = append(res.Found, *hits[i])
		} else {
			res.NotFound = append(res.NotFound, p.Name)
		}
	}
	return res
}

func probe(c *netutil.Client, username string, p Platform) *Hit {
	url := fmt.Sprintf(p.URL, username)
	resp, err := c.Do(url)
	if err != nil {
		logrus.Debugf("social probe %s: %v", p.Name, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil
	}
	hit := &Hit{Platform: p.Name, URL: url}
	if doc, err := goquery.NewDocumentFromReader(resp.Body); err == nil {
		hit.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return hit
}
