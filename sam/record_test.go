package sam

import (
	"bytes"
	"testing"

	"github.com/biogo/hts/sam"
)

func checkTest(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

var samHeader = []byte("@SQ\tSN:ref\tLN:400\n@SQ\tSN:ref2\tLN:400\n")

func parseRecord(t *testing.T, line []byte) *Record {
	t.Helper()
	data := append(append([]byte{}, samHeader...), line...)
	sr, err := sam.NewReader(bytes.NewReader(data))
	checkTest(err, t)
	r, err := sr.Read()
	checkTest(err, t)
	return NewRecord(r, "test.bam")
}

func TestRefIDs(t *testing.T) {
	for i, c := range []struct {
		line     []byte
		sameRefs bool
	}{
		{
			[]byte("r001	99	ref	7	30	8M2I4M1D3M	=	37	39	TTAGATAAAGGATACTG	*\n"),
			true,
		},
		{
			[]byte("r002	97	ref	7	30	17M	ref2	37	0	TTAGATAAAGGATACTG	*\n"),
			false,
		},
	} {
		r := parseRecord(t, c.line)
		if r.RefID() < 0 {
			t.Errorf("[%d] expected non-negative reference id, got %d", i, r.RefID())
		}
		if same := r.RefID() == r.MateRefID(); same != c.sameRefs {
			t.Errorf("[%d] %s: expected sameRefs=%v, got ref=%d mate=%d", i, r.Name, c.sameRefs, r.RefID(), r.MateRefID())
		}
	}
}

func TestRefIDUnmapped(t *testing.T) {
	r := parseRecord(t, []byte("r003	4	*	0	0	*	*	0	0	ACGT	*\n"))
	if r.RefID() != -1 || r.MateRefID() != -1 {
		t.Errorf("expected -1 reference ids for unmapped read, got ref=%d mate=%d", r.RefID(), r.MateRefID())
	}
}

func TestHasTag(t *testing.T) {
	r := parseRecord(t, []byte("r004	0	ref	9	30	11M	*	0	0	GCCTAAGCTAA	*	XA:Z:ref,+20,11M,0;\n"))
	if !r.HasTag("XA") {
		t.Error("expected XA tag to be present")
	}
	if r.HasTag("NH") {
		t.Error("expected NH tag to be absent")
	}
}

func auxInt(t *testing.T, a sam.Aux) int {
	t.Helper()
	switch v := a.Value().(type) {
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	default:
		t.Fatalf("unexpected aux value type %T", v)
		return 0
	}
}

func TestSetTagIdempotent(t *testing.T) {
	r := parseRecord(t, []byte("r005	0	ref	9	30	11M	*	0	0	GCCTAAGCTAA	*\n"))
	checkTest(r.SetTag("XS", 100), t)
	nAux := len(r.AuxFields)
	checkTest(r.SetTag("XS", 100), t)
	checkTest(r.SetTag("XS", 100), t)
	if len(r.AuxFields) != nAux {
		t.Errorf("expected %d aux fields after repeated SetTag, got %d", nAux, len(r.AuxFields))
	}
	aux, ok := r.Tag([]byte("XS"))
	if !ok {
		t.Fatal("expected XS tag to be present")
	}
	if v := auxInt(t, aux); v != 100 {
		t.Errorf("expected XS value 100, got %d", v)
	}

	checkTest(r.SetTag("XS", 250), t)
	aux, _ = r.Tag([]byte("XS"))
	if v := auxInt(t, aux); v != 250 {
		t.Errorf("expected XS value 250 after overwrite, got %d", v)
	}
}

func TestAlignedSeq(t *testing.T) {
	for i, c := range []struct {
		line     []byte
		expected string
	}{
		{
			[]byte("r006	0	ref	9	30	11M	*	0	0	GCCTAAGCTAA	*\n"),
			"GCCTAAGCTAA",
		},
		{
			[]byte("r007	0	ref	9	30	5S6M	*	0	0	GCCTAAGCTAA	*\n"),
			"AGCTAA",
		},
		{
			[]byte("r008	0	ref	9	30	3S6M2S	*	0	0	GCCTAAGCTAA	*\n"),
			"TAAGCT",
		},
		{
			[]byte("r009	0	ref	29	17	6H5M	*	0	0	TAGGC	*\n"),
			"TAGGC",
		},
	} {
		r := parseRecord(t, c.line)
		if got := string(r.AlignedSeq()); got != c.expected {
			t.Errorf("[%d] %s: expected %q, got %q", i, r.Name, c.expected, got)
		}
	}
}
