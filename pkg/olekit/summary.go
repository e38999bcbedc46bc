package olekit

import (
	"time"

	"github.com/joshuapare/olekit/pkg/types"
)

// filetimeEpoch is what a zero FILETIME decodes to; writers use it for
// "never", so it is reported as unset.
var filetimeEpoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// Summary is a typed view of the SummaryInformation and
// DocSummaryInformation properties. Missing properties keep their zero
// value.
type Summary struct {
	Title          string    `json:"title,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	Author         string    `json:"author,omitempty"`
	Keywords       string    `json:"keywords,omitempty"`
	Comments       string    `json:"comments,omitempty"`
	Template       string    `json:"template,omitempty"`
	LastAuthor     string    `json:"last_author,omitempty"`
	RevisionNumber string    `json:"revision_number,omitempty"`
	AppName        string    `json:"app_name,omitempty"`
	Created        time.Time `json:"created,omitzero"`
	LastSaved      time.Time `json:"last_saved,omitzero"`
	LastPrinted    time.Time `json:"last_printed,omitzero"`
	PageCount      int64     `json:"page_count,omitempty"`
	WordCount      int64     `json:"word_count,omitempty"`
	CharCount      int64     `json:"char_count,omitempty"`

	Category string `json:"category,omitempty"`
	Manager  string `json:"manager,omitempty"`
	Company  string `json:"company,omitempty"`

	// Custom holds the user-defined properties in stream order.
	Custom []CustomProperty `json:"custom,omitempty"`
}

// CustomProperty is one user-defined property rendered as text.
type CustomProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// NewSummary extracts a Summary from the given collections. When several
// collections carry the same property the first non-empty value wins.
func NewSummary(cols ...*types.Collection) Summary {
	var s Summary
	for _, c := range cols {
		if c == nil {
			continue
		}
		if set, ok := c.Summary(); ok {
			s.fillSummary(set)
		}
		if set, ok := c.DocSummary(); ok {
			s.fillDocSummary(set)
		}
		for _, set := range c.Sets {
			if set.Class() == types.ClassUserDefined {
				s.fillCustom(set)
			}
		}
	}
	return s
}

// IsZero reports whether no field was found.
func (s *Summary) IsZero() bool {
	return s.Title == "" && s.Subject == "" && s.Author == "" && s.Keywords == "" &&
		s.Comments == "" && s.Template == "" && s.LastAuthor == "" &&
		s.RevisionNumber == "" && s.AppName == "" && s.Created.IsZero() &&
		s.LastSaved.IsZero() && s.LastPrinted.IsZero() && s.PageCount == 0 &&
		s.WordCount == 0 && s.CharCount == 0 && s.Category == "" &&
		s.Manager == "" && s.Company == "" && len(s.Custom) == 0
}

func (s *Summary) fillSummary(set *types.PropertySet) {
	setText(&s.Title, set, types.PIDSI_TITLE)
	setText(&s.Subject, set, types.PIDSI_SUBJECT)
	setText(&s.Author, set, types.PIDSI_AUTHOR)
	setText(&s.Keywords, set, types.PIDSI_KEYWORDS)
	setText(&s.Comments, set, types.PIDSI_COMMENTS)
	setText(&s.Template, set, types.PIDSI_TEMPLATE)
	setText(&s.LastAuthor, set, types.PIDSI_LASTAUTHOR)
	setText(&s.RevisionNumber, set, types.PIDSI_REVNUMBER)
	setText(&s.AppName, set, types.PIDSI_APPNAME)
	setTime(&s.Created, set, types.PIDSI_CREATE_DTM)
	setTime(&s.LastSaved, set, types.PIDSI_LASTSAVE_DTM)
	setTime(&s.LastPrinted, set, types.PIDSI_LASTPRINTED)
	setCount(&s.PageCount, set, types.PIDSI_PAGECOUNT)
	setCount(&s.WordCount, set, types.PIDSI_WORDCOUNT)
	setCount(&s.CharCount, set, types.PIDSI_CHARCOUNT)
}

func (s *Summary) fillDocSummary(set *types.PropertySet) {
	setText(&s.Category, set, types.PIDDSI_CATEGORY)
	setText(&s.Manager, set, types.PIDDSI_MANAGER)
	setText(&s.Company, set, types.PIDDSI_COMPANY)
}

func (s *Summary) fillCustom(set *types.PropertySet) {
	for _, p := range set.Properties {
		if !p.Named || p.Absent() {
			continue
		}
		s.Custom = append(s.Custom, CustomProperty{
			Name:  p.Name,
			Type:  p.Type.String(),
			Value: p.String(),
		})
	}
}

// scalar returns the scalar value of property id, or nil.
func scalar(set *types.PropertySet, id uint32) *types.Value {
	p, ok := set.Lookup(id)
	if !ok {
		return nil
	}
	return p.Value
}

func setText(dst *string, set *types.PropertySet, id uint32) {
	if *dst != "" {
		return
	}
	if v := scalar(set, id); v != nil && v.Kind == types.KindString {
		*dst = v.Text
	}
}

func setTime(dst *time.Time, set *types.PropertySet, id uint32) {
	if !dst.IsZero() {
		return
	}
	if v := scalar(set, id); v != nil && v.Kind == types.KindTime && v.Time.After(filetimeEpoch) {
		*dst = v.Time
	}
}

func setCount(dst *int64, set *types.PropertySet, id uint32) {
	if *dst != 0 {
		return
	}
	v := scalar(set, id)
	if v == nil {
		return
	}
	switch v.Kind {
	case types.KindInt:
		*dst = v.Int
	case types.KindUint:
		*dst = int64(v.Uint)
	}
}
