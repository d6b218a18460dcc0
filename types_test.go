package raven

import "testing"

func TestWidensEqualTypes(t *testing.T) {
	if !Widens(TInt, TInt) {
		t.Fatalf("int should widen to int")
	}
	if !Widens(TStructOf("Point"), TStructOf("Point")) {
		t.Fatalf("matching struct types should widen")
	}
}

func TestWidensIntToFloatOnly(t *testing.T) {
	if !Widens(TInt, TFloat) {
		t.Fatalf("int should widen to float")
	}
	if Widens(TFloat, TInt) {
		t.Fatalf("float must not widen to int")
	}
}

func TestWidensArrayElementsAreInvariant(t *testing.T) {
	if Widens(TArray(TInt), TArray(TFloat)) {
		t.Fatalf("int[] must not widen to float[]")
	}
}

func TestWidensEmptyArrayLiteralUnifiesWithAnyArrayType(t *testing.T) {
	if !Widens(TArray(TUnknown), TArray(TString)) {
		t.Fatalf("[] should widen to any declared array type")
	}
}

func TestWidensUnknownWidensToAnything(t *testing.T) {
	if !Widens(TUnknown, TEnumOf("Suit")) {
		t.Fatalf("an Unknown-typed value (e.g. enum_from_string's dynamic result) should widen to a declared enum type")
	}
	if !Widens(TUnknown, TInt) {
		t.Fatalf("Unknown should widen to int too")
	}
}

func TestWiderNumeric(t *testing.T) {
	if got := WiderNumeric(TInt, TInt); got.Kind != KInt {
		t.Fatalf("int op int should stay int, got %v", got)
	}
	if got := WiderNumeric(TInt, TFloat); got.Kind != KFloat {
		t.Fatalf("int op float should widen to float, got %v", got)
	}
	if got := WiderNumeric(TFloat, TFloat); got.Kind != KFloat {
		t.Fatalf("float op float should stay float, got %v", got)
	}
}

func TestTypeEqualStructVsEnumWithSameName(t *testing.T) {
	if TStructOf("X").Equal(TEnumOf("X")) {
		t.Fatalf("a struct and an enum with the same name must not be equal")
	}
}

func TestTypeStringForm(t *testing.T) {
	if got := TArray(TInt).String(); got != "int[]" {
		t.Fatalf("TArray(TInt).String() = %q, want %q", got, "int[]")
	}
	if got := TStructOf("Point").String(); got != "Point" {
		t.Fatalf("TStructOf(\"Point\").String() = %q, want %q", got, "Point")
	}
}

func TestRegistryStructFieldType(t *testing.T) {
	sd := &StructDef{Name: "Point", Fields: []FieldDef{{Name: "x", Type: TInt}, {Name: "y", Type: TInt}}}
	if _, ok := sd.FieldType("z"); ok {
		t.Fatalf("unexpected field z found")
	}
	ty, ok := sd.FieldType("x")
	if !ok || ty.Kind != KInt {
		t.Fatalf("want field x: int, got %v, %v", ty, ok)
	}
}

func TestEnumDefHasVariant(t *testing.T) {
	ed := &EnumDef{Name: "Color", Variants: []string{"Red", "Green", "Blue"}}
	if !ed.HasVariant("Green") {
		t.Fatalf("want HasVariant(Green) = true")
	}
	if ed.HasVariant("Purple") {
		t.Fatalf("want HasVariant(Purple) = false")
	}
}
