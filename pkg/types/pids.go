package types

// SummaryInformation property identifiers (PIDSI_*).
const (
	PIDSI_TITLE        uint32 = 0x02
	PIDSI_SUBJECT      uint32 = 0x03
	PIDSI_AUTHOR       uint32 = 0x04
	PIDSI_KEYWORDS     uint32 = 0x05
	PIDSI_COMMENTS     uint32 = 0x06
	PIDSI_TEMPLATE     uint32 = 0x07
	PIDSI_LASTAUTHOR   uint32 = 0x08
	PIDSI_REVNUMBER    uint32 = 0x09
	PIDSI_EDITTIME     uint32 = 0x0A
	PIDSI_LASTPRINTED  uint32 = 0x0B
	PIDSI_CREATE_DTM   uint32 = 0x0C
	PIDSI_LASTSAVE_DTM uint32 = 0x0D
	PIDSI_PAGECOUNT    uint32 = 0x0E
	PIDSI_WORDCOUNT    uint32 = 0x0F
	PIDSI_CHARCOUNT    uint32 = 0x10
	PIDSI_THUMBNAIL    uint32 = 0x11
	PIDSI_APPNAME      uint32 = 0x12
	PIDSI_DOC_SECURITY uint32 = 0x13
)

// DocSummaryInformation property identifiers (PIDDSI_*).
const (
	PIDDSI_CATEGORY    uint32 = 0x02
	PIDDSI_PRESFORMAT  uint32 = 0x03
	PIDDSI_BYTECOUNT   uint32 = 0x04
	PIDDSI_LINECOUNT   uint32 = 0x05
	PIDDSI_PARCOUNT    uint32 = 0x06
	PIDDSI_SLIDECOUNT  uint32 = 0x07
	PIDDSI_NOTECOUNT   uint32 = 0x08
	PIDDSI_HIDDENCOUNT uint32 = 0x09
	PIDDSI_MMCLIPCOUNT uint32 = 0x0A
	PIDDSI_SCALE       uint32 = 0x0B
	PIDDSI_HEADINGPAIR uint32 = 0x0C
	PIDDSI_DOCPARTS    uint32 = 0x0D
	PIDDSI_MANAGER     uint32 = 0x0E
	PIDDSI_COMPANY     uint32 = 0x0F
	PIDDSI_LINKSDIRTY  uint32 = 0x10
)

var summaryLabels = map[uint32]string{
	PIDSI_TITLE:        "Title",
	PIDSI_SUBJECT:      "Subject",
	PIDSI_AUTHOR:       "Author",
	PIDSI_KEYWORDS:     "Keywords",
	PIDSI_COMMENTS:     "Comments",
	PIDSI_TEMPLATE:     "Template",
	PIDSI_LASTAUTHOR:   "LastAuthor",
	PIDSI_REVNUMBER:    "RevisionNumber",
	PIDSI_EDITTIME:     "EditTime",
	PIDSI_LASTPRINTED:  "LastPrinted",
	PIDSI_CREATE_DTM:   "Created",
	PIDSI_LASTSAVE_DTM: "LastSaved",
	PIDSI_PAGECOUNT:    "PageCount",
	PIDSI_WORDCOUNT:    "WordCount",
	PIDSI_CHARCOUNT:    "CharCount",
	PIDSI_THUMBNAIL:    "Thumbnail",
	PIDSI_APPNAME:      "AppName",
	PIDSI_DOC_SECURITY: "Security",
}

var docSummaryLabels = map[uint32]string{
	PIDDSI_CATEGORY:    "Category",
	PIDDSI_PRESFORMAT:  "PresentationFormat",
	PIDDSI_BYTECOUNT:   "ByteCount",
	PIDDSI_LINECOUNT:   "LineCount",
	PIDDSI_PARCOUNT:    "ParagraphCount",
	PIDDSI_SLIDECOUNT:  "SlideCount",
	PIDDSI_NOTECOUNT:   "NoteCount",
	PIDDSI_HIDDENCOUNT: "HiddenCount",
	PIDDSI_MMCLIPCOUNT: "MultimediaClipCount",
	PIDDSI_SCALE:       "ScaleCrop",
	PIDDSI_HEADINGPAIR: "HeadingPairs",
	PIDDSI_DOCPARTS:    "TitlesOfParts",
	PIDDSI_MANAGER:     "Manager",
	PIDDSI_COMPANY:     "Company",
	PIDDSI_LINKSDIRTY:  "LinksUpToDate",
}

// PropertyLabel returns the well-known display label of a property id within
// a set class, or "" when there is none. Id 1 is the code page in every set.
func PropertyLabel(class SetClass, id uint32) string {
	if id == 1 {
		return "CodePage"
	}
	switch class {
	case ClassSummary:
		return summaryLabels[id]
	case ClassDocSummary:
		return docSummaryLabels[id]
	default:
		return ""
	}
}
