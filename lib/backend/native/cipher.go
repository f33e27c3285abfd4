package native

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"github.com/go-i2p/cryptkit/lib/crypto/ciphers"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
)

// CipherSupported implements backend.CipherBackend. The native backend
// serves AES and TripleDES in CBC, CFB, OFB and CTR modes; Camellia and
// CAST5 stay with external backends.
func (b *Backend) CipherSupported(alg ciphers.CipherAlgorithm, mode ciphers.Mode) bool {
	switch alg.(type) {
	case *ciphers.AES, *ciphers.TripleDES:
	default:
		return false
	}
	switch mode.(type) {
	case ciphers.CBC, ciphers.CFB, ciphers.OFB, ciphers.CTR:
		return true
	default:
		return false
	}
}

func (b *Backend) newBlock(alg ciphers.CipherAlgorithm) (cipher.Block, error) {
	switch alg.(type) {
	case *ciphers.AES:
		return aes.NewCipher(alg.Key())
	case *ciphers.TripleDES:
		return des.NewTripleDESCipher(expandTripleDESKey(alg.Key()))
	default:
		return nil, types.Unsupportedf(types.UnsupportedCipher,
			"cipher %s is not supported by the native backend", alg.Name())
	}
}

// expandTripleDESKey widens two-key and one-key 3DES keys to the 24-byte
// keying option the block cipher expects.
func expandTripleDESKey(key []byte) []byte {
	switch len(key) {
	case 8:
		out := make([]byte, 0, 24)
		out = append(out, key...)
		out = append(out, key...)
		return append(out, key...)
	case 16:
		out := make([]byte, 0, 24)
		out = append(out, key...)
		return append(out, key[:8]...)
	default:
		return key
	}
}

// CreateSymmetricEncryptionCtx implements backend.CipherBackend.
func (b *Backend) CreateSymmetricEncryptionCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode) (ciphers.Context, error) {
	return b.createCipherCtx(alg, mode, true)
}

// CreateSymmetricDecryptionCtx implements backend.CipherBackend.
func (b *Backend) CreateSymmetricDecryptionCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode) (ciphers.Context, error) {
	return b.createCipherCtx(alg, mode, false)
}

func (b *Backend) createCipherCtx(alg ciphers.CipherAlgorithm, mode ciphers.Mode, encrypt bool) (ciphers.Context, error) {
	if !b.CipherSupported(alg, mode) {
		return nil, types.Unsupportedf(types.UnsupportedCipher,
			"cipher %s in %s mode is not supported by the native backend", alg.Name(), mode.Name())
	}
	block, err := b.newBlock(alg)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to initialize %s", alg.Name())
	}

	switch m := mode.(type) {
	case ciphers.CBC:
		if len(m.IV()) != block.BlockSize() {
			return nil, types.ValueErrorf("invalid IV size (%d) for CBC", len(m.IV()))
		}
		var bm cipher.BlockMode
		if encrypt {
			bm = cipher.NewCBCEncrypter(block, m.IV())
		} else {
			bm = cipher.NewCBCDecrypter(block, m.IV())
		}
		return &blockModeCtx{bm: bm, blockSize: block.BlockSize()}, nil
	case ciphers.CFB:
		if len(m.IV()) != block.BlockSize() {
			return nil, types.ValueErrorf("invalid IV size (%d) for CFB", len(m.IV()))
		}
		if encrypt {
			return &streamCtx{s: cipher.NewCFBEncrypter(block, m.IV())}, nil
		}
		return &streamCtx{s: cipher.NewCFBDecrypter(block, m.IV())}, nil
	case ciphers.OFB:
		if len(m.IV()) != block.BlockSize() {
			return nil, types.ValueErrorf("invalid IV size (%d) for OFB", len(m.IV()))
		}
		return &streamCtx{s: cipher.NewOFB(block, m.IV())}, nil
	case ciphers.CTR:
		if len(m.Nonce()) != block.BlockSize() {
			return nil, types.ValueErrorf("invalid nonce size (%d) for CTR", len(m.Nonce()))
		}
		return &streamCtx{s: cipher.NewCTR(block, m.Nonce())}, nil
	default:
		return nil, types.Unsupportedf(types.UnsupportedCipher,
			"mode %s is not supported by the native backend", mode.Name())
	}
}

// blockModeCtx buffers input until whole blocks are available. Finalize
// fails when a partial block remains; this layer applies no padding.
type blockModeCtx struct {
	bm        cipher.BlockMode
	buf       []byte
	blockSize int
	finalized bool
}

func (c *blockModeCtx) Update(data []byte) ([]byte, error) {
	if c.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	c.buf = append(c.buf, data...)
	n := len(c.buf) / c.blockSize * c.blockSize
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	c.bm.CryptBlocks(out, c.buf[:n])
	c.buf = c.buf[n:]
	return out, nil
}

func (c *blockModeCtx) Finalize() ([]byte, error) {
	if c.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	c.finalized = true
	if len(c.buf) != 0 {
		return nil, types.ValueErrorf("the length of the provided data is not a multiple of the block length")
	}
	return nil, nil
}

// streamCtx wraps a keystream cipher; no buffering is needed.
type streamCtx struct {
	s         cipher.Stream
	finalized bool
}

func (c *streamCtx) Update(data []byte) ([]byte, error) {
	if c.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	out := make([]byte, len(data))
	c.s.XORKeyStream(out, data)
	return out, nil
}

func (c *streamCtx) Finalize() ([]byte, error) {
	if c.finalized {
		return nil, types.ErrAlreadyFinalized
	}
	c.finalized = true
	return nil, nil
}
