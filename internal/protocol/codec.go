package protocol

import (
	"github.com/tinylib/msgp/msgp"
)

// msgp codecs. Every message is a map keyed by the msg tag
// names; unknown keys are skipped so peers can add fields.

// maxStrings bounds every decoded string list. Boards hold at most five
// cards and a classification names each of its eight features once.
const maxStrings = 16

func writeStrings(en *msgp.Writer, ss []string) error {
	if err := en.WriteArrayHeader(uint32(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := en.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

func readStrings(dc *msgp.Reader, ss []string) ([]string, error) {
	n, err := dc.ReadArrayHeader()
	if err != nil {
		return ss, err
	}
	if n > maxStrings {
		return ss, msgp.ArrayError{Wanted: maxStrings, Got: n}
	}
	if cap(ss) >= int(n) {
		ss = ss[:n]
	} else {
		ss = make([]string, n)
	}
	for i := range ss {
		if ss[i], err = dc.ReadString(); err != nil {
			return ss, msgp.WrapError(err, i)
		}
	}
	return ss, nil
}

type field struct {
	name  string
	write func(*msgp.Writer) error
}

func writeMap(en *msgp.Writer, fields []field) error {
	if err := en.WriteMapHeader(uint32(len(fields))); err != nil {
		return err
	}
	for _, f := range fields {
		if err := en.WriteString(f.name); err != nil {
			return err
		}
		if err := f.write(en); err != nil {
			return msgp.WrapError(err, f.name)
		}
	}
	return nil
}

// readMap calls decode for each key; decode reports false for keys it
// does not know, which are skipped.
func readMap(dc *msgp.Reader, decode func(key string) (bool, error)) error {
	n, err := dc.ReadMapHeader()
	if err != nil {
		return err
	}
	for range n {
		key, err := dc.ReadMapKeyPtr()
		if err != nil {
			return err
		}
		name := string(key)
		known, err := decode(name)
		if err != nil {
			return msgp.WrapError(err, name)
		}
		if !known {
			if err := dc.Skip(); err != nil {
				return msgp.WrapError(err, name)
			}
		}
	}
	return nil
}

func str(s string) func(*msgp.Writer) error {
	return func(en *msgp.Writer) error { return en.WriteString(s) }
}

func boolean(b bool) func(*msgp.Writer) error {
	return func(en *msgp.Writer) error { return en.WriteBool(b) }
}

func strs(ss []string) func(*msgp.Writer) error {
	return func(en *msgp.Writer) error { return writeStrings(en, ss) }
}

// EncodeMsg implements msgp.Encodable
func (z *Request) EncodeMsg(en *msgp.Writer) error {
	return writeMap(en, []field{
		{"type", str(z.Type)},
		{"id", str(z.ID)},
		{"board", strs(z.Board)},
		{"hole", strs(z.Hole)},
		{"street", str(z.Street)},
		{"strategy", str(z.Strategy)},
	})
}

// DecodeMsg implements msgp.Decodable
func (z *Request) DecodeMsg(dc *msgp.Reader) error {
	return readMap(dc, func(key string) (bool, error) {
		var err error
		switch key {
		case "type":
			z.Type, err = dc.ReadString()
		case "id":
			z.ID, err = dc.ReadString()
		case "board":
			z.Board, err = readStrings(dc, z.Board)
		case "hole":
			z.Hole, err = readStrings(dc, z.Hole)
		case "street":
			z.Street, err = dc.ReadString()
		case "strategy":
			z.Strategy, err = dc.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

// EncodeMsg implements msgp.Encodable
func (z *ClassifyResult) EncodeMsg(en *msgp.Writer) error {
	return writeMap(en, []field{
		{"type", str(z.Type)},
		{"id", str(z.ID)},
		{"street", str(z.Street)},
		{"features", strs(z.Features)},
		{"texture", str(z.Texture)},
		{"tier", str(z.Tier)},
		{"wetness", str(z.Wetness)},
		{"ace_high", boolean(z.AceHigh)},
		{"tjqk", boolean(z.TJQK)},
		{"required", str(z.Required)},
	})
}

// DecodeMsg implements msgp.Decodable
func (z *ClassifyResult) DecodeMsg(dc *msgp.Reader) error {
	return readMap(dc, func(key string) (bool, error) {
		var err error
		switch key {
		case "type":
			z.Type, err = dc.ReadString()
		case "id":
			z.ID, err = dc.ReadString()
		case "street":
			z.Street, err = dc.ReadString()
		case "features":
			z.Features, err = readStrings(dc, z.Features)
		case "texture":
			z.Texture, err = dc.ReadString()
		case "tier":
			z.Tier, err = dc.ReadString()
		case "wetness":
			z.Wetness, err = dc.ReadString()
		case "ace_high":
			z.AceHigh, err = dc.ReadBool()
		case "tjqk":
			z.TJQK, err = dc.ReadBool()
		case "required":
			z.Required, err = dc.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

// EncodeMsg implements msgp.Encodable
func (z *CheckResult) EncodeMsg(en *msgp.Writer) error {
	return writeMap(en, []field{
		{"type", str(z.Type)},
		{"id", str(z.ID)},
		{"strategy", str(z.Strategy)},
		{"street", str(z.Street)},
		{"texture", str(z.Texture)},
		{"tier", str(z.Tier)},
		{"required", str(z.Required)},
		{"score", str(z.Score)},
		{"good_enough", boolean(z.GoodEnough)},
	})
}

// DecodeMsg implements msgp.Decodable
func (z *CheckResult) DecodeMsg(dc *msgp.Reader) error {
	return readMap(dc, func(key string) (bool, error) {
		var err error
		switch key {
		case "type":
			z.Type, err = dc.ReadString()
		case "id":
			z.ID, err = dc.ReadString()
		case "strategy":
			z.Strategy, err = dc.ReadString()
		case "street":
			z.Street, err = dc.ReadString()
		case "texture":
			z.Texture, err = dc.ReadString()
		case "tier":
			z.Tier, err = dc.ReadString()
		case "required":
			z.Required, err = dc.ReadString()
		case "score":
			z.Score, err = dc.ReadString()
		case "good_enough":
			z.GoodEnough, err = dc.ReadBool()
		default:
			return false, nil
		}
		return true, err
	})
}

// EncodeMsg implements msgp.Encodable
func (z *Error) EncodeMsg(en *msgp.Writer) error {
	return writeMap(en, []field{
		{"type", str(z.Type)},
		{"id", str(z.ID)},
		{"code", str(z.Code)},
		{"message", str(z.Message)},
	})
}

// DecodeMsg implements msgp.Decodable
func (z *Error) DecodeMsg(dc *msgp.Reader) error {
	return readMap(dc, func(key string) (bool, error) {
		var err error
		switch key {
		case "type":
			z.Type, err = dc.ReadString()
		case "id":
			z.ID, err = dc.ReadString()
		case "code":
			z.Code, err = dc.ReadString()
		case "message":
			z.Message, err = dc.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

// header is the subset of fields every message carries.
type header struct {
	Type string
	ID   string
}

func (z *header) DecodeMsg(dc *msgp.Reader) error {
	return readMap(dc, func(key string) (bool, error) {
		var err error
		switch key {
		case "type":
			z.Type, err = dc.ReadString()
		case "id":
			z.ID, err = dc.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}
