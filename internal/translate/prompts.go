package translate

// Mode selects the system prompt and sampling for a translation call.
type Mode string

const (
	// ModeDocument covers regular prose documents (PDF/DOCX/TXT).
	ModeDocument Mode = "document"
	// ModeTable covers tabular data (CSV/XLSX) carried through the
	// pipe-delimited text channel.
	ModeTable Mode = "table"
	// ModeOCR covers text recognized from images, which may have noisy
	// line breaks.
	ModeOCR Mode = "ocr"
)

const documentPrompt = "You are a professional translator. Translate the user's French text into clear, natural English. " +
	"Preserve document structure, paragraph breaks, numbered lists, and headings. " +
	"Use Markdown conventions for emphasis (**bold**, *italic*) and '- ' for list items. Do NOT add commentary."

const tablePrompt = "You are a professional translator for tabular data. Translate French into clear, natural English. " +
	"Keep the table structure STRICTLY. Represent each row as pipe-delimited cells: col1 | col2 | col3. " +
	"For spreadsheets with multiple sheets, begin each sheet with an exact header line: '===== Sheet: <Name> ====='. " +
	"Do not add commentary or notes. Do not say the data is encoded. Only output the translated cells."

const ocrPrompt = "You are a professional translator. The input was extracted via OCR and may have noisy line breaks. " +
	"Translate the French text into clear, natural English, preserving layout where reasonable " +
	"(headings, lists, paragraphs). Do NOT add commentary."

func (m Mode) systemPrompt() string {
	switch m {
	case ModeTable:
		return tablePrompt
	case ModeOCR:
		return ocrPrompt
	default:
		return documentPrompt
	}
}

func (m Mode) temperature() float32 {
	// Be stricter for tables so cell boundaries survive.
	if m == ModeTable {
		return 0.0
	}
	return 0.2
}

// ModeForFormat picks the translation mode for a source format.
func ModeForFormat(spreadsheet, image bool) Mode {
	switch {
	case spreadsheet:
		return ModeTable
	case image:
		return ModeOCR
	default:
		return ModeDocument
	}
}
