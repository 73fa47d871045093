package fetch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/opencapitol/gavel/internal/model"
)

var congressRe = regexp.MustCompile(`-([0-9]+)`)

// ParseHearingMeta extracts a hearing's metadata from its repository
// metadata document (mods). The transcript text is attached separately.
func ParseHearingMeta(doc []byte, pageURL string) (*model.HearingRecord, error) {
	root, err := html.Parse(strings.NewReader(string(doc)))
	if err != nil {
		return nil, fmt.Errorf("parse metadata page: %w", err)
	}

	rec := &model.HearingRecord{URL: pageURL}

	uri := firstText(findAll(root, func(n *html.Node) bool {
		return n.Data == "identifier" && attr(n, "type") == "uri"
	}))
	if uri == "" {
		return nil, fmt.Errorf("metadata page %s: no uri identifier", pageURL)
	}
	if m := congressRe.FindStringSubmatch(uri); m != nil {
		rec.Congress, _ = strconv.Atoi(m[1])
	}
	rec.ID = jacketFromURI(uri)

	for _, committee := range findAll(root, func(n *html.Node) bool {
		return n.Data == "congcommittee"
	}) {
		name, sub := committeeNames(committee)
		if name != "" {
			rec.Committees = append(rec.Committees, name)
		}
		if sub != "" {
			rec.Subcommittees = append(rec.Subcommittees, sub)
		}
	}

	rec.Chamber = strings.ToUpper(firstText(findAll(root, func(n *html.Node) bool {
		return n.Data == "chamber"
	})))
	if rec.Chamber == "" {
		rec.Chamber = chamberFromJacket(rec.ID)
	}

	if s := firstText(findAll(root, func(n *html.Node) bool {
		return n.Data == "session"
	})); s != "" {
		rec.Session, _ = strconv.Atoi(s)
	}

	if d := firstText(findAll(root, func(n *html.Node) bool {
		return n.Data == "helddate"
	})); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			rec.Date = t
		}
	}

	for _, w := range findAll(root, func(n *html.Node) bool {
		return n.Data == "witness"
	}) {
		if text := nodeText(w); text != "" {
			rec.Witnesses = append(rec.Witnesses, text)
		}
	}

	rec.Sudoc = firstText(findAll(root, func(n *html.Node) bool {
		return n.Data == "classification" && attr(n, "authority") == "sudocs"
	}))

	return rec, nil
}

// committeeNames pulls the short authority names for a committee element
// and its first subcommittee, falling back to the parsed name when no
// authority-short form exists.
func committeeNames(committee *html.Node) (name, sub string) {
	for _, n := range findAll(committee, func(n *html.Node) bool {
		return n.Data == "name"
	}) {
		inSub := hasAncestor(n, committee, "subcommittee")
		switch attr(n, "type") {
		case "authority-short":
			if inSub && sub == "" {
				sub = nodeText(n)
			} else if !inSub && name == "" {
				name = nodeText(n)
			}
		case "parsed":
			if !inSub && name == "" {
				name = nodeText(n)
			}
		}
	}
	return name, sub
}

func hasAncestor(n, stop *html.Node, tag string) bool {
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return true
		}
	}
	return false
}

// jacketFromURI extracts the CHRG jacket id from a package uri.
var jacketURIRe = regexp.MustCompile(`CHRG-[0-9]+[a-z]+[0-9]+`)

func jacketFromURI(uri string) string {
	return jacketURIRe.FindString(uri)
}

// chamberFromJacket infers the chamber from the jacket's type letter:
// CHRG-113shrg... is a Senate hearing, CHRG-113hhrg... a House one, and
// CHRG-113jhrg... a joint one.
func chamberFromJacket(jacket string) string {
	m := regexp.MustCompile(`CHRG-[0-9]+([a-z])`).FindStringSubmatch(jacket)
	if m == nil {
		return ""
	}
	switch m[1] {
	case "s":
		return model.ChamberSenate
	case "h":
		return model.ChamberHouse
	case "j":
		return model.ChamberJoint
	}
	return ""
}

// findAll walks the node tree collecting element nodes matching pred.
func findAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// nodeText concatenates the text content beneath a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func firstText(nodes []*html.Node) string {
	if len(nodes) == 0 {
		return ""
	}
	return nodeText(nodes[0])
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
