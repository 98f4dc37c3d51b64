package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	atterberg "Geospace/internal/calc/atterberg"
)

func setRows(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("NewSheet(%s): %v", sheet, err)
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cellName, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
}

func labWorkbook(t *testing.T) *excelize.File {
	f := excelize.NewFile()
	setRows(t, f, SheetLiquidLimit, [][]interface{}{
		{"Can No.", "Can", "Can+Moist", "Can+Dry", "Blows"},
		{"C1", "0", "145", "100", "15"},
		{"C2", "0", "142", "100", "20"},
		{"", "", "", "", ""},
		{"C3", "0", "138", "100", "30"},
	})
	setRows(t, f, SheetPlasticLimit, [][]interface{}{
		{"Can No.", "Can", "Can+Moist", "Can+Dry"},
		{"P1", "0", "122.3", "100"},
		{"P2", "0", "119.8", "100"},
	})
	setRows(t, f, SheetGravity, [][]interface{}{
		{"Boring", "Sample", "Depth", "Soil", "Temp", "M1", "M4", "Capacity"},
		{"BH-1", "S1", "1.5", "Silty Sand", "24.3", "160", "690.5", "500"},
		{"BH-1", "S2", "3.0", "Clayey Silt", "22", "160", "684", "500"},
	})
	return f
}

func TestReadAtterberg(t *testing.T) {
	in, err := ReadAtterberg(labWorkbook(t))
	if err != nil {
		t.Fatalf("ReadAtterberg: %v", err)
	}
	if len(in.PlasticLimit) != 2 {
		t.Fatalf("plastic rows = %d", len(in.PlasticLimit))
	}
	res, err := atterberg.CalculateInput(in)
	if err != nil {
		t.Fatalf("CalculateInput: %v", err)
	}
	if res.LiquidLimit != 40 || res.PlasticLimit != 20 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestReadGravity(t *testing.T) {
	forms, err := ReadGravity(labWorkbook(t))
	if err != nil {
		t.Fatalf("ReadGravity: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("forms = %d", len(forms))
	}
	if forms[1].SoilDescription != "Clayey Silt" || forms[1].ObservedTemp != "22" || forms[1].Capacity != "500" {
		t.Errorf("unexpected form %+v", forms[1])
	}
}

func TestReadMissingSheet(t *testing.T) {
	if _, err := ReadGravity(excelize.NewFile()); err == nil {
		t.Errorf("expected error for missing sheet")
	}
}

func upload(t *testing.T, f *excelize.File) *http.Request {
	t.Helper()
	xlsx, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "lab.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(xlsx.Bytes())
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlerImports(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.Atterberg(rec, upload(t, labWorkbook(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("atterberg status = %d (%s)", rec.Code, rec.Body.String())
	}
	var resp atterberg.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.SoilType != atterberg.SoilCLOL {
		t.Errorf("soil type = %q", resp.Result.SoilType)
	}

	rec = httptest.NewRecorder()
	h.Gravity(rec, upload(t, labWorkbook(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("gravity status = %d (%s)", rec.Code, rec.Body.String())
	}
	var grav GravityImportResult
	if err := json.NewDecoder(rec.Body).Decode(&grav); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if grav.Count != 2 {
		t.Errorf("count = %d", grav.Count)
	}

	rec = httptest.NewRecorder()
	h.Gravity(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d", rec.Code)
	}
}
