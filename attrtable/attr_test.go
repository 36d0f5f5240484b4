package attrtable

import "testing"

func TestNameIDKnownAttrs(t *testing.T) {
	for _, a := range knownAttrs {
		id := NameID(a.name)
		if id == CustomAttr {
			t.Fatalf("NameID(%q) = CustomAttr", a.name)
		}
		if got := table[id].Name; got != a.name {
			t.Fatalf("slot %d holds %q, want %q", id, got, a.name)
		}
	}
}

func TestNameIDUnknown(t *testing.T) {
	if id := NameID("data-widget-foo"); id != CustomAttr {
		t.Errorf("NameID(custom) = %d, want CustomAttr", id)
	}
}

func TestLookupFlags(t *testing.T) {
	if LookupFlags("onclick")&Event == 0 {
		t.Errorf("onclick should carry Event flag")
	}
	if LookupFlags("id")&Global == 0 {
		t.Errorf("id should carry Global flag")
	}
	if LookupFlags("data-x") != 0 {
		t.Errorf("unknown attribute should report no flags")
	}
}

func TestSetGetCaseInsensitive(t *testing.T) {
	var head *Attr
	Set(&head, "Class", "btn")
	if !Has(head, "class") {
		t.Fatalf("Has(class) = false after Set(Class)")
	}
	got := Get(head, "CLASS")
	if got == nil || got.Value != "btn" {
		t.Fatalf("Get(CLASS) = %v, want value btn", got)
	}
}

func TestSetOverwritesExisting(t *testing.T) {
	var head *Attr
	Set(&head, "id", "a")
	Set(&head, "id", "b")
	if Len(head) != 1 {
		t.Fatalf("Len = %d, want 1 (overwrite, not append)", Len(head))
	}
	if Get(head, "id").Value != "b" {
		t.Fatalf("Get(id).Value = %q, want b", Get(head, "id").Value)
	}
}

func TestLenAndHas(t *testing.T) {
	var head *Attr
	Set(&head, "href", "/x")
	Set(&head, "target", "_blank")
	if Len(head) != 2 {
		t.Fatalf("Len = %d, want 2", Len(head))
	}
	if !Has(head, "href") || !Has(head, "target") {
		t.Fatalf("Has reports missing attribute")
	}
	if Has(head, "rel") {
		t.Fatalf("Has(rel) = true, want false")
	}
}
