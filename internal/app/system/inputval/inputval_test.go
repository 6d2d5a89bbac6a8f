package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"dedi@sttnf.ac.id", true},
		{"user.name@example.com", true},
		{"  a@b.co  ", true},

		{"", false},
		{"   ", false},
		{"dedi", false},
		{"dedi@sttnf", false}, // no dot
		{"dedi.sttnf.ac.id", false},
		{"@example.com", false},
		{"Dedi <dedi@x.com>", false},
		{"de di@x.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type sampleInput struct {
	Nama      string `validate:"notblank,max=10" label:"Nama"`
	Email     string `validate:"required,sheetemail" label:"Email"`
	Pertemuan int    `validate:"gte=1" label:"Pertemuan"`
}

func TestValidate(t *testing.T) {
	if res := Validate(sampleInput{Nama: "Dedi", Email: "d@x.com", Pertemuan: 1}); res.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}

	res := Validate(sampleInput{Nama: "  ", Email: "d@x", Pertemuan: 0})
	if len(res.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %+v", res.Errors)
	}
	if res.First() != "Nama tidak boleh kosong." {
		t.Errorf("First() = %q", res.First())
	}
	if res.Errors[1].Message != "Format email tidak valid." {
		t.Errorf("email message = %q", res.Errors[1].Message)
	}
	if res.Errors[2].Label != "Pertemuan" || res.Errors[2].Tag != "gte" {
		t.Errorf("pertemuan error = %+v", res.Errors[2])
	}
	if !res.HasTag("notblank") || res.HasTag("oneof") {
		t.Error("HasTag mismatch")
	}
}

func TestValidate_MaxLength(t *testing.T) {
	res := Validate(sampleInput{Nama: "Nama yang terlalu panjang", Email: "d@x.com", Pertemuan: 2})
	if res.First() != "Nama maksimal 10 karakter." {
		t.Errorf("First() = %q", res.First())
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	if res := Validate("nope"); !res.HasErrors() {
		t.Error("expected an error for a non-struct")
	}
}
