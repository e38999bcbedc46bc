package olekit

import (
	"io"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

// XMPNamespace is the namespace URI of the olekit XMP properties.
const XMPNamespace = "https://github.com/joshuapare/olekit/ns/1.0/"

var xDefault = language.MustParse("x-default")

// OLEProperties holds the Summary fields that have no Dublin Core
// counterpart. It is registered under the "olekit" prefix.
type OLEProperties struct {
	_ xmp.Namespace `xmp:"https://github.com/joshuapare/olekit/ns/1.0/"`
	_ xmp.Prefix    `xmp:"olekit"`

	Subject        xmp.Text
	Keywords       xmp.Text
	Template       xmp.Text
	LastAuthor     xmp.Text
	RevisionNumber xmp.Text
	AppName        xmp.AgentName
	Created        xmp.Date
	LastSaved      xmp.Date
	LastPrinted    xmp.Date
	PageCount      xmp.Text
	WordCount      xmp.Text
	CharCount      xmp.Text
	Category       xmp.Text
	Manager        xmp.Text
	Company        xmp.Text
}

// XMPPacket converts s to an XMP packet: Title, Author and Comments become
// dc:title, dc:creator and dc:description, everything else goes into the
// olekit namespace. Custom properties are not exported.
func XMPPacket(s Summary) (*xmp.Packet, error) {
	dc := &xmp.DublinCore{}
	if s.Title != "" {
		dc.Title.Set(xDefault, s.Title)
	}
	if s.Author != "" {
		dc.Creator.Append(xmp.NewProperName(s.Author))
	}
	if s.Comments != "" {
		dc.Description.Set(xDefault, s.Comments)
	}

	ole := &OLEProperties{
		Subject:        text(s.Subject),
		Keywords:       text(s.Keywords),
		Template:       text(s.Template),
		LastAuthor:     text(s.LastAuthor),
		RevisionNumber: text(s.RevisionNumber),
		Created:        date(s.Created),
		LastSaved:      date(s.LastSaved),
		LastPrinted:    date(s.LastPrinted),
		PageCount:      count(s.PageCount),
		WordCount:      count(s.WordCount),
		CharCount:      count(s.CharCount),
		Category:       text(s.Category),
		Manager:        text(s.Manager),
		Company:        text(s.Company),
	}
	if s.AppName != "" {
		ole.AppName = xmp.NewAgentName(s.AppName)
	}

	packet := xmp.NewPacket()
	if err := packet.Set(dc, ole); err != nil {
		return nil, err
	}
	return packet, nil
}

// WriteXMP writes s as a pretty-printed XMP packet.
func WriteXMP(w io.Writer, s Summary) error {
	packet, err := XMPPacket(s)
	if err != nil {
		return err
	}
	return packet.Write(w, &xmp.PacketOptions{Pretty: true})
}

func text(s string) xmp.Text {
	if s == "" {
		return xmp.Text{}
	}
	return xmp.NewText(s)
}

func date(t time.Time) xmp.Date {
	if t.IsZero() {
		return xmp.Date{}
	}
	return xmp.NewDate(t)
}

func count(n int64) xmp.Text {
	if n == 0 {
		return xmp.Text{}
	}
	return xmp.NewText(strconv.FormatInt(n, 10))
}
