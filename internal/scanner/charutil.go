package scanner

const (
	ctrlClass byte = 1 << iota
	spaceClass
	digitClass
	hexClass
	alphaClass
)

// byteClass maps each byte to the classes it belongs to.  Identifiers are
// ASCII only and '_' counts as a letter.
var byteClass = func() (t [256]byte) {
	for b := 0; b < 0x20; b++ {
		t[b] |= ctrlClass
	}
	for _, b := range " \t\r\n" {
		t[b] |= spaceClass
	}
	for b := '0'; b <= '9'; b++ {
		t[b] |= digitClass | hexClass
	}
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= alphaClass
		t[b-'a'+'A'] |= alphaClass
	}
	for b := 'a'; b <= 'f'; b++ {
		t[b] |= hexClass
		t[b-'a'+'A'] |= hexClass
	}
	t['_'] |= alphaClass
	return t
}()

func IsAlpha(b byte) bool { return byteClass[b]&alphaClass != 0 }
func IsDigit(b byte) bool { return byteClass[b]&digitClass != 0 }
func IsHex(b byte) bool   { return byteClass[b]&hexClass != 0 }
func IsCtrl(b byte) bool  { return byteClass[b]&ctrlClass != 0 }
func IsSpace(b byte) bool { return byteClass[b]&spaceClass != 0 }

func IsAlnum(b byte) bool {
	return byteClass[b]&(alphaClass|digitClass) != 0
}
