package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"nexrecon/config"
	"nexrecon/dnslookup"
	"nexrecon/exifmeta"
	"nexrecon/geoip"
	"nexrecon/hashtool"
	"nexrecon/headers"
	"nexrecon/netutil"
	"nexrecon/output"
	"nexrecon/passgen"
	"nexrecon/phone"
	"nexrecon/port"
	"nexrecon/scanner"
	"nexrecon/social"
	"nexrecon/subnet"
	"nexrecon/whois"
)

const banner = `
  _   _           ____
 | \ | | _____  _|  _ \ ___  ___ ___  _ __
 |  \| |/ _ \ \/ / |_) / _ \/ __/ _ \| '_ \
 | |\  |  __/>  <|  _ <  __/ (_| (_) | | | |
 |_| \_|\___/_/\_\_| \_\___|\___\___/|_| |_|
`

type tool struct {
	num  int
	name string
	desc string
	run  func(a *app) error
}

type category struct {
	name  string
	tools []tool
}

// app carries the shared state every tool needs: config, the retrying HTTP
// client and the line reader for prompts.
type app struct {
	cfg  *config.Config
	http *netutil.Client
	in   *bufio.Reader
	out  io.Writer
}

var menu = []category{
	{
		name: "Network & IP",
		tools: []tool{
			{1, "IP Tracker", "geolocate an IP address", (*app).runIPTracker},
			{2, "Show Your IP", "display your public IP", (*app).runShowIP},
			{3, "Port Scanner", "scan a host for open TCP ports", (*app).runPortScan},
			{4, "Subnet Calculator", "calculate IPv4 network ranges", (*app).runSubnet},
		},
	},
	{
		name: "OSINT & Lookup",
		tools: []tool{
			{5, "Phone Tracker", "phone number lookup", (*app).runPhone},
			{6, "Username Search", "find social profiles", (*app).runUsername},
			{7, "WHOIS Lookup", "domain registration info", (*app).runWhois},
			{8, "DNS Lookup", "query DNS records", (*app).runDNS},
		},
	},
	{
		name: "Security & Analysis",
		tools: []tool{
			{9, "Header Analysis", "check security headers", (*app).runHeaders},
			{10, "Image EXIF", "extract image metadata", (*app).runExif},
		},
	},
	{
		name: "Utilities",
		tools: []tool{
			{11, "Password Gen", "generate random passwords", (*app).runPassgen},
			{12, "Hash Tools", "compute and identify hashes", (*app).runHash},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}
	if lvl, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(lvl)
	}

	a := &app{
		cfg:  cfg,
		http: netutil.NewClient(cfg.HTTP.Timeout, cfg.HTTP.Retries, cfg.HTTP.UserAgent),
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
	}
	a.loop()
}

func (a *app) loop() {
	for {
		a.printMenu()
		choice, err := a.prompt("option")
		if err != nil { // stdin closed
			return
		}
		if choice == "" {
			continue
		}
		switch strings.ToLower(choice) {
		case "0", "q", "quit", "exit":
			fmt.Fprintln(a.out, "bye")
			return
		}
		n, err := strconv.Atoi(choice)
		t := findTool(n)
		if err != nil || t == nil {
			output.Error(a.out, "invalid option %q", choice)
			continue
		}
		if err := t.run(a); err != nil {
			output.Error(a.out, "%s: %v", t.name, err)
		}
		fmt.Fprint(a.out, "\npress enter to continue...")
		a.in.ReadString('\n')
	}
}

func findTool(num int) *tool {
	for _, c := range menu {
		for i := range c.tools {
			if c.tools[i].num == num {
				return &c.tools[i]
			}
		}
	}
	return nil
}

func (a *app) printMenu() {
	color.New(color.FgYellow, color.Bold).Fprint(a.out, banner)
	for _, c := range menu {
		output.Section(a.out, c.name)
		for _, t := range c.tools {
			fmt.Fprintf(a.out, "  [%2d] %-18s %s\n", t.num, t.name, t.desc)
		}
	}
	fmt.Fprintln(a.out, "\n  [ 0] Exit")
}

// prompt prints a label and reads one trimmed line from stdin.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "\n%s> ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) runIPTracker() error {
	ip, err := a.prompt("IP address")
	if err != nil {
		return err
	}
	if ip == "" {
		return errors.New("an IP address is required")
	}
	info, err := geoip.Lookup(a.http, ip)
	if err != nil {
		return err
	}
	a.printGeo(info)
	return nil
}

func (a *app) runShowIP() error {
	ip, err := geoip.PublicIP(a.http)
	if err != nil {
		return err
	}
	output.Section(a.out, "Public IP")
	output.Item(a.out, "Your IP", ip)
	info, err := geoip.Lookup(a.http, ip)
	if err != nil {
		output.Warning(a.out, "geolocation unavailable: %v", err)
		return nil
	}
	a.printGeo(info)
	return nil
}

func (a *app) printGeo(info *geoip.Info) {
	output.Section(a.out, "Location")
	output.Item(a.out, "IP", info.IP)
	output.Item(a.out, "Source", info.Source)
	output.Item(a.out, "Country", fmt.Sprintf("%s (%s)", info.Country, info.CountryCode))
	output.Item(a.out, "Region", info.Region)
	output.Item(a.out, "City", info.City)
	output.Item(a.out, "ZIP", info.Zip)
	output.Item(a.out, "Continent", info.Continent)
	output.Item(a.out, "Coordinates", fmt.Sprintf("%v, %v", info.Latitude, info.Longitude))
	output.Item(a.out, "Timezone", info.Timezone)
	output.Section(a.out, "Network")
	output.Item(a.out, "ISP", info.ISP)
	output.Item(a.out, "Organization", info.Org)
	output.Item(a.out, "AS", info.AS)
	output.Item(a.out, "Mobile", yesNo(info.Mobile))
	output.Item(a.out, "Proxy/VPN", yesNo(info.Proxy))
	output.Item(a.out, "Hosting/DC", yesNo(info.Hosting))
	if u := info.MapsURL(); u != "" {
		output.Item(a.out, "Maps", u)
	}
}

func (a *app) runPortScan() error {
	target, err := a.prompt("target host or IP")
	if err != nil {
		return err
	}
	spec, err := a.prompt("ports (e.g. 22,80,8000-8100; empty = common)")
	if err != nil {
		return err
	}

	var ports []int
	if spec == "" {
		ports = port.CommonPorts()
	} else if ports, err = port.ParseSpec(spec); err != nil {
		return err
	}

	// Ctrl-C cancels the scan, not the shell.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(a.out, "scanning %d ports on %s (Ctrl-C to cancel)...\n", len(ports), target)
	rep, err := scanner.Scan(ctx, scanner.Config{
		Target:  target,
		Ports:   ports,
		Timeout: a.cfg.Scanner.Timeout,
		Workers: a.cfg.Scanner.Workers,
	})
	if errors.Is(err, scanner.ErrCancelled) {
		output.Warning(a.out, "scan cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	output.PrintReport(a.out, rep)

	save, err := a.prompt("save report? [y/N]")
	if err != nil {
		return err
	}
	if strings.EqualFold(save, "y") {
		if err := os.MkdirAll(a.cfg.Output.ResultsDir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(a.cfg.Output.ResultsDir, "scan-"+rep.ID+".txt")
		if err := output.WriteAtomic(path, []byte(output.ReportText(rep))); err != nil {
			return err
		}
		output.Success(a.out, "report saved to %s", path)
	}
	return nil
}

func (a *app) runSubnet() error {
	in, err := a.prompt("IPv4 CIDR (e.g. 192.168.1.0/24)")
	if err != nil {
		return err
	}
	info, err := subnet.Calculate(in)
	if err != nil {
		return err
	}
	output.Section(a.out, "Subnet")
	output.Item(a.out, "Address", info.Address)
	output.Item(a.out, "Network", info.CIDR)
	output.Item(a.out, "Netmask", info.Mask)
	output.Item(a.out, "Wildcard", info.Wildcard)
	output.Item(a.out, "Broadcast", info.Broadcast)
	output.Item(a.out, "Host range", fmt.Sprintf("%s - %s", info.FirstHost, info.LastHost))
	output.Item(a.out, "Usable hosts", strconv.FormatUint(uint64(info.Hosts), 10))
	output.Item(a.out, "Class", info.Class)
	output.Item(a.out, "Private", yesNo(info.Private))
	output.Item(a.out, "Loopback", yesNo(info.Loopback))
	return nil
}

func (a *app) runPhone() error {
	number, err := a.prompt("phone number (with country code, e.g. +62812...)")
	if err != nil {
		return err
	}
	info, err := phone.Lookup(number, a.cfg.Phone.DefaultRegion)
	if err != nil {
		return err
	}
	output.Section(a.out, "Phone Number")
	output.Item(a.out, "Input", info.Input)
	output.Item(a.out, "Valid", yesNo(info.Valid))
	output.Item(a.out, "Possible", yesNo(info.Possible))
	output.Item(a.out, "Region", info.RegionCode)
	output.Item(a.out, "Country code", fmt.Sprintf("+%d", info.CountryCode))
	output.Item(a.out, "Location", info.Location)
	output.Item(a.out, "Carrier", info.Carrier)
	output.Item(a.out, "Timezones", strings.Join(info.Timezones, ", "))
	output.Item(a.out, "Type", info.Type)
	output.Section(a.out, "Formats")
	output.Item(a.out, "E.164", info.E164)
	output.Item(a.out, "International", info.International)
	output.Item(a.out, "National", info.NationalFmt)
	return nil
}

func (a *app) runUsername() error {
	username, err := a.prompt("username")
	if err != nil {
		return err
	}
	if username == "" {
		return errors.New("a username is required")
	}
	if !social.ValidUsername(username) {
		output.Warning(a.out, "username has characters some platforms reject, proceeding anyway")
	}

	res := social.Search(a.http, username, social.DefaultPlatforms, func(i, total int, name string) {
		fmt.Fprintf(a.out, "\r checking %d/%d: %-20s", i, total, name)
	})
	fmt.Fprintln(a.out)

	output.Section(a.out, fmt.Sprintf("Profiles for %q", res.Username))
	for _, hit := range res.Found {
		output.Success(a.out, "%-12s %s", hit.Platform, hit.URL)
	}
	if len(res.Found) == 0 {
		output.Warning(a.out, "no profiles found")
	}
	fmt.Fprintf(a.out, "\n%d found, %d not found\n", len(res.Found), len(res.NotFound))
	return nil
}

func (a *app) runWhois() error {
	domain, err := a.prompt("domain (e.g. example.com)")
	if err != nil {
		return err
	}
	rec, err := whois.Lookup(a.http, domain)
	if err != nil {
		return err
	}
	output.Section(a.out, "Domain")
	output.Item(a.out, "Domain", rec.Domain)
	output.Item(a.out, "Handle", rec.Handle)
	output.Item(a.out, "Registrar", rec.Registrar)
	output.Item(a.out, "Registrar ID", rec.RegistrarID)
	output.Item(a.out, "Status", strings.Join(rec.Status, ", "))
	output.Section(a.out, "Dates")
	for _, ev := range rec.Events {
		output.Item(a.out, ev.Action, ev.Date)
	}
	output.Section(a.out, "Nameservers")
	for _, ns := range rec.Nameservers {
		output.Item(a.out, "NS", ns)
	}
	return nil
}

func (a *app) runDNS() error {
	domain, err := a.prompt("domain")
	if err != nil {
		return err
	}
	server := dnslookup.SystemResolver()
	answers, err := dnslookup.Query(server, domain, a.cfg.HTTP.Timeout)
	if err != nil {
		return err
	}
	output.Section(a.out, fmt.Sprintf("DNS records for %s (via %s)", domain, server))
	for _, rt := range dnslookup.RecordTypes {
		rrs, ok := answers[rt]
		if !ok {
			continue
		}
		for _, rr := range rrs {
			output.Item(a.out, rt, fmt.Sprintf("%s (TTL %d)", rr.Value, rr.TTL))
		}
	}
	return nil
}

func (a *app) runHeaders() error {
	url, err := a.prompt("URL")
	if err != nil {
		return err
	}
	res, err := headers.Analyze(a.http, url)
	if err != nil {
		return err
	}
	output.Section(a.out, "Response")
	output.Item(a.out, "URL", res.URL)
	if res.FinalURL != res.URL {
		output.Item(a.out, "Final URL", res.FinalURL)
	}
	output.Item(a.out, "Status", strconv.Itoa(res.StatusCode))
	output.Item(a.out, "Response time", fmt.Sprintf("%dms", res.ResponseTime.Milliseconds()))
	output.Item(a.out, "Server", res.Server)
	output.Item(a.out, "Powered by", res.PoweredBy)
	output.Item(a.out, "Content type", res.ContentType)

	output.Section(a.out, "Security headers")
	for _, sh := range headers.SecurityHeaders {
		if res.Security[sh.Label] {
			output.Success(a.out, "%s", sh.Label)
		} else {
			output.Warning(a.out, "%s missing", sh.Label)
		}
	}

	if len(res.Cookies) > 0 {
		output.Section(a.out, "Cookies")
		for _, c := range res.Cookies {
			output.Item(a.out, c.Name, fmt.Sprintf("secure=%s httponly=%s", yesNo(c.Secure), yesNo(c.HTTPOnly)))
		}
	}
	return nil
}

func (a *app) runExif() error {
	src, err := a.prompt("image path or URL")
	if err != nil {
		return err
	}
	var meta *exifmeta.Metadata
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		meta, err = exifmeta.FromURL(a.http, src)
	} else {
		meta, err = exifmeta.FromFile(src)
	}
	if err != nil {
		return err
	}

	output.Section(a.out, "Image")
	output.Item(a.out, "Source", meta.Source)
	output.Item(a.out, "Format", meta.Format)
	output.Item(a.out, "Dimensions", fmt.Sprintf("%dx%d (%.1f MP)", meta.Width, meta.Height, meta.Megapixels()))
	if meta.Size > 0 {
		output.Item(a.out, "File size", exifmeta.HumanSize(meta.Size))
	}
	if !meta.HasExif {
		output.Warning(a.out, "no EXIF data in this image")
		return nil
	}
	printFields := func(title string, fields []exifmeta.Field) {
		if len(fields) == 0 {
			return
		}
		output.Section(a.out, title)
		for _, f := range fields {
			output.Item(a.out, f.Name, f.Value)
		}
	}
	printFields("Camera", meta.Camera)
	printFields("Dates", meta.Dates)
	printFields("Exposure", meta.Exposure)
	printFields("Software", meta.Software)
	if meta.GPS != nil {
		output.Section(a.out, "GPS")
		output.Item(a.out, "Latitude", fmt.Sprintf("%.6f", meta.GPS.Latitude))
		output.Item(a.out, "Longitude", fmt.Sprintf("%.6f", meta.GPS.Longitude))
		output.Item(a.out, "Altitude", meta.GPS.Altitude)
		output.Item(a.out, "Maps", meta.GPS.MapsURL)
		output.Warning(a.out, "GPS data reveals where this photo was taken")
	}
	return nil
}

func (a *app) runPassgen() error {
	opts := passgen.Options{
		Length:  a.promptInt("length", 16),
		Count:   a.promptInt("how many", 1),
		Upper:   a.promptYN("uppercase letters", true),
		Lower:   a.promptYN("lowercase letters", true),
		Digits:  a.promptYN("digits", true),
		Special: a.promptYN("special characters", true),
	}
	passwords, err := passgen.Generate(opts)
	if err != nil {
		return err
	}
	output.Section(a.out, "Passwords")
	for i, p := range passwords {
		output.Item(a.out, fmt.Sprintf("#%d [%s]", i+1, p.Strength), p.Value)
	}
	return nil
}

func (a *app) runHash() error {
	fmt.Fprintln(a.out, "\n  [1] compute digests of text")
	fmt.Fprintln(a.out, "  [2] identify a hash")
	fmt.Fprintln(a.out, "  [3] bcrypt a password")
	fmt.Fprintln(a.out, "  [4] verify a bcrypt hash")
	choice, err := a.prompt("option")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		text, err := a.prompt("text")
		if err != nil {
			return err
		}
		output.Section(a.out, "Digests")
		for _, d := range hashtool.Digests(text) {
			output.Item(a.out, d.Algo, d.Hex)
		}
	case "2":
		hash, err := a.prompt("hash")
		if err != nil {
			return err
		}
		an := hashtool.Identify(hash)
		output.Section(a.out, "Analysis")
		output.Item(a.out, "Length", strconv.Itoa(an.Length))
		output.Item(a.out, "Hex", yesNo(an.HexValid))
		if len(an.Candidates) == 0 {
			output.Warning(a.out, "no known algorithm matches")
		}
		for _, c := range an.Candidates {
			output.Success(a.out, "possible: %s", c)
		}
	case "3":
		text, err := a.prompt("password")
		if err != nil {
			return err
		}
		h, err := hashtool.Bcrypt(text)
		if err != nil {
			return err
		}
		output.Item(a.out, "bcrypt", h)
	case "4":
		hash, err := a.prompt("bcrypt hash")
		if err != nil {
			return err
		}
		text, err := a.prompt("password")
		if err != nil {
			return err
		}
		if hashtool.BcryptVerify(hash, text) {
			output.Success(a.out, "password matches")
		} else {
			output.Error(a.out, "password does not match")
		}
	default:
		return fmt.Errorf("invalid option %q", choice)
	}
	return nil
}

// promptInt reads an integer, falling back to def on empty or bad input.
func (a *app) promptInt(label string, def int) int {
	in, err := a.prompt(fmt.Sprintf("%s [%d]", label, def))
	if err != nil || in == "" {
		return def
	}
	n, err := strconv.Atoi(in)
	if err != nil {
		output.Warning(a.out, "not a number, using %d", def)
		return def
	}
	return n
}

// promptYN reads a yes/no answer, falling back to def on empty input.
func (a *app) promptYN(label string, def bool) bool {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	in, err := a.prompt(fmt.Sprintf("%s [%s]", label, hint))
	if err != nil || in == "" {
		return def
	}
	return strings.EqualFold(in, "y") || strings.EqualFold(in, "yes")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
