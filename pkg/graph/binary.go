package graph

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"
	"unsafe"
)

const (
	magicBytes   = "RTGRAPH\x00"
	version      = uint32(1)
	maxNodes     = 50_000_000
	maxEdges     = 100_000_000
	maxStringLen = math.MaxUint16
)

// fileHeader is the binary header.
type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	NumNodes uint32
	NumEdges uint32
}

// WriteBinary serializes node and edge arrays to a binary file.
// Arrays are stored column by column; the file ends with a CRC32 of everything before it.
func WriteBinary(path string, nodes []Node, edges []Edge) error {
	if len(nodes) > maxNodes || len(edges) > maxEdges {
		return fmt.Errorf("graph exceeds file limits (%d nodes, %d edges): %w", len(nodes), len(edges), ErrInvalidArgument)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	bw := bufio.NewWriter(f)
	crcWriter := crc32Writer{w: bw, hash: crc32.NewIEEE()}
	w := &crcWriter

	hdr := fileHeader{
		Version:  version,
		NumNodes: uint32(len(nodes)),
		NumEdges: uint32(len(edges)),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	ids := make([]uint32, len(nodes))
	lats := make([]float64, len(nodes))
	lons := make([]float64, len(nodes))
	for i, n := range nodes {
		ids[i], lats[i], lons[i] = n.ID, n.Lat, n.Lon
	}
	if err := writeUint32Slice(w, ids); err != nil {
		return fmt.Errorf("write node ids: %w", err)
	}
	if err := writeFloat64Slice(w, lats); err != nil {
		return fmt.Errorf("write node lat: %w", err)
	}
	if err := writeFloat64Slice(w, lons); err != nil {
		return fmt.Errorf("write node lon: %w", err)
	}

	from := make([]uint32, len(edges))
	to := make([]uint32, len(edges))
	length := make([]uint32, len(edges))
	speed := make([]uint16, len(edges))
	oneWay := make([]byte, len(edges))
	for i, e := range edges {
		from[i], to[i], length[i], speed[i] = e.FromID, e.ToID, e.LengthM, e.SpeedKmh
		if e.OneWay {
			oneWay[i] = 1
		}
	}
	if err := writeUint32Slice(w, from); err != nil {
		return fmt.Errorf("write edge from: %w", err)
	}
	if err := writeUint32Slice(w, to); err != nil {
		return fmt.Errorf("write edge to: %w", err)
	}
	if err := writeUint32Slice(w, length); err != nil {
		return fmt.Errorf("write edge length: %w", err)
	}
	if err := writeUint16Slice(w, speed); err != nil {
		return fmt.Errorf("write edge speed: %w", err)
	}
	if _, err := w.Write(oneWay); err != nil {
		return fmt.Errorf("write edge oneway: %w", err)
	}

	// Auxiliary metadata (length-prefixed strings).
	for i, e := range edges {
		if err := writeString(w, e.Name); err != nil {
			return fmt.Errorf("write edge %d name: %w", i, err)
		}
		if err := writeString(w, e.HighwayType); err != nil {
			return fmt.Errorf("write edge %d highway: %w", i, err)
		}
	}

	checksum := crcWriter.hash.Sum32()
	if err := binary.Write(bw, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic rename.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// ReadBinary deserializes node and edge arrays written by WriteBinary.
func ReadBinary(path string) ([]Node, []Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	crcReader := crc32Reader{r: br, hash: crc32.NewIEEE()}
	r := &crcReader

	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, nil, fmt.Errorf("invalid magic bytes %q: %w", hdr.Magic, ErrInvalidData)
	}
	if hdr.Version != version {
		return nil, nil, fmt.Errorf("unsupported version %d: %w", hdr.Version, ErrInvalidData)
	}
	if hdr.NumNodes > maxNodes {
		return nil, nil, fmt.Errorf("NumNodes %d exceeds limit %d: %w", hdr.NumNodes, maxNodes, ErrInvalidData)
	}
	if hdr.NumEdges > maxEdges {
		return nil, nil, fmt.Errorf("NumEdges %d exceeds limit %d: %w", hdr.NumEdges, maxEdges, ErrInvalidData)
	}

	nn, ne := int(hdr.NumNodes), int(hdr.NumEdges)

	ids, err := readUint32Slice(r, nn)
	if err != nil {
		return nil, nil, fmt.Errorf("read node ids: %w", err)
	}
	lats, err := readFloat64Slice(r, nn)
	if err != nil {
		return nil, nil, fmt.Errorf("read node lat: %w", err)
	}
	lons, err := readFloat64Slice(r, nn)
	if err != nil {
		return nil, nil, fmt.Errorf("read node lon: %w", err)
	}

	from, err := readUint32Slice(r, ne)
	if err != nil {
		return nil, nil, fmt.Errorf("read edge from: %w", err)
	}
	to, err := readUint32Slice(r, ne)
	if err != nil {
		return nil, nil, fmt.Errorf("read edge to: %w", err)
	}
	length, err := readUint32Slice(r, ne)
	if err != nil {
		return nil, nil, fmt.Errorf("read edge length: %w", err)
	}
	speed, err := readUint16Slice(r, ne)
	if err != nil {
		return nil, nil, fmt.Errorf("read edge speed: %w", err)
	}
	oneWay := make([]byte, ne)
	if _, err := io.ReadFull(r, oneWay); err != nil {
		return nil, nil, fmt.Errorf("read edge oneway: %w", err)
	}

	nodes := make([]Node, nn)
	for i := range nodes {
		nodes[i] = Node{ID: ids[i], Lat: lats[i], Lon: lons[i]}
	}
	edges := make([]Edge, ne)
	for i := range edges {
		edges[i] = Edge{
			FromID:   from[i],
			ToID:     to[i],
			LengthM:  length[i],
			SpeedKmh: speed[i],
			OneWay:   oneWay[i] != 0,
		}
		if edges[i].Name, err = readString(r); err != nil {
			return nil, nil, fmt.Errorf("read edge %d name: %w", i, err)
		}
		if edges[i].HighwayType, err = readString(r); err != nil {
			return nil, nil, fmt.Errorf("read edge %d highway: %w", i, err)
		}
	}

	expectedCRC := crcReader.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(br, binary.LittleEndian, &storedCRC); err != nil {
		return nil, nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x: %w", storedCRC, expectedCRC, ErrInvalidData)
	}

	return nodes, edges, nil
}

// Zero-copy I/O helpers using unsafe.Slice. The format is little-endian,
// matching every platform the binaries are built for.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeUint16Slice(w io.Writer, s []uint16) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*2)
	_, err := w.Write(b)
	return err
}

func writeFloat64Slice(w io.Writer, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readUint16Slice(r io.Reader, n int) ([]uint16, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint16, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*2)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readFloat64Slice(r io.Reader, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]float64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func writeString(w io.Writer, s string) error {
	if len(s) > maxStringLen {
		s = s[:maxStringLen]
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
