package contract

type CapabilityID string

const (
	CapabilityGeneral CapabilityID = "multimodel"
	CapabilityWeb     CapabilityID = "web"
	CapabilityFinance CapabilityID = "finance"
	CapabilityPOS     CapabilityID = "retail-pos"
)

// Attachment is an uploaded document as received from the transport layer.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

const MediaTypePDF = "application/pdf"

func (a Attachment) IsPDF() bool {
	return a.ContentType == MediaTypePDF
}

type CapabilityDescriptor struct {
	ID           CapabilityID `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Capabilities []string     `json:"capabilities"`
}
