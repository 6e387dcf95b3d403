package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/go-sif/tabular/workflow"
	"github.com/klauspost/compress/zstd"
)

// Conf configures the writing of snapshots
type Conf struct {
	Codec     Codec             // The compression applied to snapshots. Defaults to LZ4Codec.
	ZstdLevel zstd.EncoderLevel // The zstd compression level, when Codec is ZstdCodec. Defaults to zstd.SpeedDefault.
}

// Write persists a StateSnapshot to w
func Write(w io.Writer, snap *workflow.StateSnapshot, conf *Conf) error {
	if conf == nil {
		conf = &Conf{}
	} else {
		c := *conf
		conf = &c
	}
	if conf.ZstdLevel == 0 {
		conf.ZstdLevel = zstd.SpeedDefault
	}
	if !conf.Codec.valid() {
		return fmt.Errorf("Unsupported snapshot codec %s", conf.Codec)
	}
	if _, err := w.Write([]byte{byte(conf.Codec)}); err != nil {
		return err
	}
	cw, err := conf.Codec.compress(w, conf)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(cw).Encode(snap); err != nil {
		cw.Close()
		return fmt.Errorf("Unable to encode snapshot: %w", err)
	}
	return cw.Close()
}

// Read loads a StateSnapshot from r, using the codec recorded in its header
func Read(r io.Reader) (*workflow.StateSnapshot, error) {
	header := make([]byte, 1)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("Unable to read snapshot header: %w", err)
	}
	dr, done, err := Codec(header[0]).decompress(r)
	if err != nil {
		return nil, err
	}
	defer done()
	snap := &workflow.StateSnapshot{}
	if err := gob.NewDecoder(dr).Decode(snap); err != nil {
		return nil, fmt.Errorf("Unable to decode snapshot: %w", err)
	}
	return snap, nil
}
