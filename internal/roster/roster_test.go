package roster

import "testing"

func TestValidateUser(t *testing.T) {
	valid := User{FullName: "John Doe", RollNumber: "25BBA001", Email: "john@example.com", BrigadeName: "Tech Brigade"}
	if err := ValidateUser(valid); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	cases := []struct {
		name string
		u    User
	}{
		{"no name", User{RollNumber: "25BBA001", Email: "a@b.c", BrigadeName: "X"}},
		{"no roll", User{FullName: "John", Email: "a@b.c", BrigadeName: "X"}},
		{"no email", User{FullName: "John", RollNumber: "25BBA001", BrigadeName: "X"}},
		{"no brigade", User{FullName: "John", RollNumber: "25BBA001", Email: "a@b.c"}},
		{"whitespace only", User{FullName: "  ", RollNumber: "25BBA001", Email: "a@b.c", BrigadeName: "X"}},
	}
	for _, tc := range cases {
		if err := ValidateUser(tc.u); err == nil {
			t.Errorf("%s: invalid user accepted", tc.name)
		}
	}
}

func TestTrimUser(t *testing.T) {
	u := TrimUser(User{FullName: " John Doe ", RollNumber: "25BBA001\t", Email: " j@e.com", BrigadeName: " Tech "})
	if u.FullName != "John Doe" || u.RollNumber != "25BBA001" || u.Email != "j@e.com" || u.BrigadeName != "Tech" {
		t.Errorf("TrimUser = %+v", u)
	}
}

func TestBrigadeExists(t *testing.T) {
	brigades := []Brigade{
		{Name: "Tech Brigade", IsActive: true},
		{Name: "Old Brigade", IsActive: false},
	}

	if !BrigadeExists(brigades, "tech brigade") {
		t.Error("case-insensitive match missed")
	}
	if !BrigadeExists(brigades, "  Tech Brigade  ") {
		t.Error("padded name missed")
	}
	if BrigadeExists(brigades, "Old Brigade") {
		t.Error("inactive brigade counted as existing")
	}
	if BrigadeExists(brigades, "Media Brigade") {
		t.Error("unknown name matched")
	}
}

func TestBrigadeNames(t *testing.T) {
	users := []User{
		{BrigadeName: "Tech"},
		{BrigadeName: "Media"},
		{BrigadeName: "Tech"},
		{BrigadeName: ""},
	}
	names := BrigadeNames(users)
	if len(names) != 2 || names[0] != "Tech" || names[1] != "Media" {
		t.Errorf("BrigadeNames = %v", names)
	}
}
