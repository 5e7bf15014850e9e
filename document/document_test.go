package document

import "testing"

func TestNew_Defaults(t *testing.T) {
	doc := New(nil)
	if doc.PageWidth != DefaultPageWidth || doc.PageHeight != DefaultPageHeight {
		t.Errorf("page = %vx%v, want %vx%v", doc.PageWidth, doc.PageHeight, DefaultPageWidth, DefaultPageHeight)
	}
	for _, indent := range []float64{doc.LeftPageIndent, doc.RightPageIndent, doc.TopPageIndent, doc.BottomPageIndent} {
		if indent != DefaultPageIndent {
			t.Errorf("indent = %v, want %v", indent, DefaultPageIndent)
		}
	}
	if len(doc.Elements) != 0 || len(doc.PageHeader) != 0 || len(doc.PageFooter) != 0 {
		t.Error("new document is not empty")
	}
}

func TestNew_KeepsElementOrder(t *testing.T) {
	elements := []Element{
		&Header{Level: 1, Text: "first"},
		&Paragraph{},
		&Table{},
	}
	doc := New(elements)
	if len(doc.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(doc.Elements))
	}
	if h, ok := doc.Elements[0].(*Header); !ok || h.Text != "first" {
		t.Errorf("element[0] = %#v", doc.Elements[0])
	}
}

func TestImageType_Ext(t *testing.T) {
	tests := []struct {
		t    ImageType
		want string
	}{
		{ImageTypePNG, "png"},
		{ImageTypeJPEG, "jpg"},
		{ImageTypeGIF, "gif"},
		{ImageTypeBMP, "bmp"},
		{ImageTypeWEBP, "webp"},
		{ImageTypeTIFF, "tiff"},
		{ImageTypeSVG, "svg"},
		{ImageTypeUnknown, "png"},
	}
	for _, tt := range tests {
		if got := tt.t.Ext(); got != tt.want {
			t.Errorf("%v.Ext() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestImage_SetAlt(t *testing.T) {
	img := &Image{Alt: "initial"}
	img.SetAlt("replaced")
	if img.Alt != "replaced" {
		t.Errorf("alt = %q, want %q", img.Alt, "replaced")
	}
}
