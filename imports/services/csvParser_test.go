package services

import (
	"errors"
	"testing"
)

func TestParseCSVSingleRow(t *testing.T) {
	rows, err := ParseCSV("name,email,role\n\"A\",\"a@b.com\",\"Personnel\"\n")
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if len(row) != 3 {
		t.Errorf("row has %d keys, want 3", len(row))
	}
	if row.Get("name") != "A" || row.Get("email") != "a@b.com" || row.Get("role") != "Personnel" {
		t.Errorf("unexpected row contents: %v", row)
	}
}

func TestParseCSVHeaderCaseInsensitiveLookup(t *testing.T) {
	rows, err := ParseCSV("Name,Email,Role\nJane Doe,jane@x.com,Standard User\n")
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if rows[0].Get("name") != "Jane Doe" {
		t.Errorf("Get(\"name\") = %q, want %q", rows[0].Get("name"), "Jane Doe")
	}
	if rows[0].Get("EMAIL") != "jane@x.com" {
		t.Errorf("Get(\"EMAIL\") = %q, want %q", rows[0].Get("EMAIL"), "jane@x.com")
	}
}

func TestParseCSVDropsMismatchedRows(t *testing.T) {
	text := "name,email,role\n" +
		"ok,ok@x.com,user\n" +
		"too,few\n" +
		"way,too,many,fields\n" +
		"\n" +
		"also ok,also@x.com,personnel\n"
	rows, err := ParseCSV(text)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (structurally invalid rows silently dropped)", len(rows))
	}
	if rows[0].Get("name") != "ok" || rows[1].Get("name") != "also ok" {
		t.Errorf("surviving rows out of order: %v", rows)
	}
}

func TestParseCSVMalformedInput(t *testing.T) {
	for _, text := range []string{"", "\n\n", "name,email,role\n", "name,email,role"} {
		if _, err := ParseCSV(text); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("ParseCSV(%q) error = %v, want ErrMalformedInput", text, err)
		}
	}
}

func TestParseCSVStripsByteOrderMark(t *testing.T) {
	rows, err := ParseCSV("\ufeffname,email\njane,jane@x.com\n")
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if rows[0].Get("name") != "jane" {
		t.Errorf("Get(\"name\") = %q, want %q (BOM should not taint the first header)", rows[0].Get("name"), "jane")
	}
}

func TestParseCSVTrimsHeaderAndCRLF(t *testing.T) {
	rows, err := ParseCSV(" name , email \r\nv1,v2\r\n")
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if rows[0].Get("name") != "v1" || rows[0].Get("email") != "v2" {
		t.Errorf("header trimming failed: %v", rows[0])
	}
}
