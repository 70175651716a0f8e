package audio

import (
	"encoding/binary"
	"fmt"
)

const wavHeaderSize = 44

// EncodeWAV renders t as a stereo 16-bit PCM WAV file, the same samples
// PlayTone sends to the device. Useful for checking a tone in an editor or
// playing it through another program.
func EncodeWAV(t Tone) ([]byte, error) {
	if t.SampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", t.SampleRate)
	}
	pcm := EncodeStereo16(Synthesize(t))

	const channels, bitsPerSample = 2, 16
	blockAlign := channels * bitsPerSample / 8

	buf := make([]byte, wavHeaderSize+len(pcm))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(wavHeaderSize-8+len(pcm)))
	copy(buf[8:12], "WAVE")

	// fmt chunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], channels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(t.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(t.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)

	// data chunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(pcm)))
	copy(buf[wavHeaderSize:], pcm)

	return buf, nil
}
