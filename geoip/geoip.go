// Package geoip looks up geolocation data for an IP address using public
// JSON APIs, falling back to the next source when one fails.
package geoip

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"nexrecon/netutil"
)

// ErrAllSourcesFailed is returned when no geolocation source gave an answer.
var ErrAllSourcesFailed = errors.New("all geolocation sources failed")

// Info is the normalised geolocation record shared by all sources.
type Info struct {
	IP          string
	Source      string // which API answered
	Country     string
	CountryCode string
	Region      string
	City        string
	Zip         string
	Continent   string
	Latitude    float64
	Longitude   float64
	Timezone    string
	ISP         string
	Org         string
	AS          string
	Mobile      bool
	Proxy       bool
	Hosting     bool
}

// MapsURL returns a Google Maps link for the located coordinates.
func (i *Info) MapsURL() string {
	if i.Latitude == 0 && i.Longitude == 0 {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps/@%v,%v,15z", i.Latitude, i.Longitude)
}

type source struct {
	name  string
	url   string // %s is the target IP
	parse func(ip string, body []byte) (*Info, error)
}

var defaultSources = []source{
	{
		name:  "ip-api.com",
		url:   "http://ip-api.com/json/%s?fields=status,message,continent,country,countryCode,regionName,city,zip,lat,lon,timezone,isp,org,as,mobile,proxy,hosting,query",
		parse: parseIPAPI,
	},
	{
		name:  "ipwho.is",
		url:   "http://ipwho.is/%s",
		parse: parseIPWhois,
	},
}

// Lookup queries the geolocation sources in order and returns the first
// successful answer.
func Lookup(c *netutil.Client, ip string) (*Info, error) {
	return lookup(c, defaultSources, ip)
}

func lookup(c *netutil.Client, sources []source, ip string) (*Info, error) {
	for _, s := range sources {
		body, err := c.Get(fmt.Sprintf(s.url, ip))
		if err != nil {
			logrus.Debugf("geoip source %s: %v", s.name, err)
			continue
		}
		info, err := s.parse(ip, body)
		if err != nil {
			logrus.Debugf("geoip source %s: %v", s.name, err)
			continue
		}
		info.Source = s.name
		return info, nil
	}
	return nil, ErrAllSourcesFailed
}

func parseIPAPI(ip string, body []byte) (*Info, error) {
	var raw struct {
		Status     string  `json:"status"`
		Message    string  `json:"message"`
		Continent  string  `json:"continent"`
		Country    string  `json:"country"`
		Code       string  `json:"countryCode"`
		RegionName string  `json:"regionName"`
		City       string  `json:"city"`
		Zip        string  `json:"zip"`
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
		Timezone   string  `json:"timezone"`
		ISP        string  `json:"isp"`
		Org        string  `json:"org"`
		AS         string  `json:"as"`
		Mobile     bool    `json:"mobile"`
		Proxy      bool    `json:"proxy"`
		Hosting    bool    `json:"hosting"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Status != "success" {
		return nil, fmt.Errorf("lookup failed: %s", raw.Message)
	}
	return &Info{
		IP:          ip,
		Continent:   raw.Continent,
		Country:     raw.Country,
		CountryCode: raw.Code,
		Region:      raw.RegionName,
		City:        raw.City,
		Zip:         raw.Zip,
		Latitude:    raw.Lat,
		Longitude:   raw.Lon,
		Timezone:    raw.Timezone,
		ISP:         raw.ISP,
		Org:         raw.Org,
		AS:          raw.AS,
		Mobile:      raw.Mobile,
		Proxy:       raw.Proxy,
		Hosting:     raw.Hosting,
	}, nil
}

func parseIPWhois(ip string, body []byte) (*Info, error) {
	var raw struct {
		Success     bool    `json:"success"`
		Message     string  `json:"message"`
		Continent   string  `json:"continent"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
		Region      string  `json:"region"`
		City        string  `json:"city"`
		Postal      string  `json:"postal"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Timezone    struct {
			ID string `json:"id"`
		} `json:"timezone"`
		Connection struct {
			ASN int    `json:"asn"`
			Org string `json:"org"`
			ISP string `json:"isp"`
		} `json:"connection"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if !raw.Success {
		return nil, fmt.Errorf("lookup failed: %s", raw.Message)
	}
	info := &Info{
		IP:          ip,
		Continent:   raw.Continent,
		Country:     raw.Country,
		CountryCode: raw.CountryCode,
		Region:      raw.Region,
		City:        raw.City,
		Zip:         raw.Postal,
		Latitude:    raw.Latitude,
		Longitude:   raw.Longitude,
		Timezone:    raw.Timezone.ID,
		ISP:         raw.Connection.ISP,
		Org:         raw.Connection.Org,
	}
	if raw.Connection.ASN != 0 {
		info.AS = fmt.Sprintf("AS%d", raw.Connection.ASN)
	}
	return info, nil
}

var publicIPSources = []string{
	"https://api.ipify.org/",
	"https://icanhazip.com/",
}

// PublicIP returns the caller's public IP address.
func PublicIP(c *netutil.Client) (string, error) {
	return publicIP(c, publicIPSources)
}

func publicIP(c *netutil.Client, urls []string) (string, error) {
	for _, u := range urls {
		body, err := c.Get(u)
		if err != nil {
			logrus.Debugf("public ip source %s: %v", u, err)
			continue
		}
		ip := strings.TrimSpace(string(body))
		if ip != "" {
			return ip, nil
		}
	}
	return "", ErrAllSourcesFailed
}
