package serialization

import (
	"encoding/binary"
	"io"

	"github.com/kaspanet/popd/domain/pop/model/externalapi"
	"github.com/pkg/errors"
)

var byteOrder = binary.LittleEndian

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	var buf []byte
	switch e := element.(type) {
	case uint8:
		buf = []byte{e}

	case uint32:
		buf = make([]byte, 4)
		byteOrder.PutUint32(buf, e)

	case int64:
		buf = make([]byte, 8)
		byteOrder.PutUint64(buf, uint64(e))

	case uint64:
		buf = make([]byte, 8)
		byteOrder.PutUint64(buf, e)

	case *externalapi.DomainHash:
		buf = e.ByteSlice()

	default:
		return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
	}

	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint8:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = buf[0]
		return nil

	case *uint32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = byteOrder.Uint32(buf[:])
		return nil

	case *int64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = int64(byteOrder.Uint64(buf[:]))
		return nil

	case *uint64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = byteOrder.Uint64(buf[:])
		return nil

	case **externalapi.DomainHash:
		var buf [externalapi.DomainHashSize]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = externalapi.NewDomainHashFromByteArray(&buf)
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVarBytes writes a uint32 length prefix followed by data
func WriteVarBytes(w io.Writer, data []byte) error {
	err := WriteElement(w, uint32(len(data)))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.WithStack(err)
}

// ReadVarBytes reads a length-prefixed byte slice, refusing anything longer
// than maxLength
func ReadVarBytes(r io.Reader, maxLength uint32, fieldName string) ([]byte, error) {
	var length uint32
	err := ReadElement(r, &length)
	if err != nil {
		return nil, err
	}
	if length > maxLength {
		return nil, errors.Wrapf(errMalformed, "%s is %d bytes long, which is more than the "+
			"allowed %d", fieldName, length, maxLength)
	}
	data := make([]byte, length)
	_, err = io.ReadFull(r, data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// Malformed returns an error that IsMalformedError recognizes
func Malformed(format string, args ...interface{}) error {
	return errors.Wrapf(errMalformed, format, args...)
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}
