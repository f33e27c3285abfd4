package cli

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/cryptkit/lib/config"
	"github.com/go-i2p/cryptkit/lib/crypto/rsa"
	"github.com/go-i2p/cryptkit/lib/crypto/types"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func initRSACommands(root *cobra.Command) {
	genkeyCmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate an RSA key pair and write it as PEM files",
		RunE:  runGenkey,
	}
	genkeyCmd.Flags().Int("key-size", 0, "modulus size in bits (default from config)")
	genkeyCmd.Flags().Int("public-exponent", 0, "public exponent (default from config)")
	genkeyCmd.Flags().String("out", "key.pem", "path of the private key file, the public key gets a .pub suffix")
	root.AddCommand(genkeyCmd)

	signCmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with an RSA private key",
		RunE:  runSign,
	}
	signCmd.Flags().String("key", "", "path to the PEM private key")
	signCmd.Flags().String("in", "", "path to the file to sign")
	signCmd.Flags().String("out", "", "path of the signature file")
	root.AddCommand(signCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature with an RSA public key",
		RunE:  runVerify,
	}
	verifyCmd.Flags().String("key", "", "path to the PEM public key")
	verifyCmd.Flags().String("in", "", "path to the signed file")
	verifyCmd.Flags().String("signature", "", "path to the signature file")
	root.AddCommand(verifyCmd)

	encryptCmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a small message with an RSA public key",
		RunE:  runEncrypt,
	}
	encryptCmd.Flags().String("key", "", "path to the PEM public key")
	encryptCmd.Flags().String("in", "", "path to the plaintext file")
	encryptCmd.Flags().String("out", "", "path of the ciphertext file")
	root.AddCommand(encryptCmd)

	decryptCmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a message with an RSA private key",
		RunE:  runDecrypt,
	}
	decryptCmd.Flags().String("key", "", "path to the PEM private key")
	decryptCmd.Flags().String("in", "", "path to the ciphertext file")
	decryptCmd.Flags().String("out", "", "path of the plaintext file")
	root.AddCommand(decryptCmd)
}

func runGenkey(cmd *cobra.Command, _ []string) error {
	cfg := config.NewCryptoConfigFromViper()
	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	keySize, _ := cmd.Flags().GetInt("key-size")
	if keySize == 0 {
		keySize = cfg.RSA.KeySize
	}
	publicExponent, _ := cmd.Flags().GetInt("public-exponent")
	if publicExponent == 0 {
		publicExponent = cfg.RSA.PublicExponent
	}
	out, _ := cmd.Flags().GetString("out")

	key, err := rsa.GeneratePrivateKey(publicExponent, keySize, provider)
	if err != nil {
		return err
	}

	privPEM, err := marshalPrivateKeyPEM(key)
	if err != nil {
		return err
	}
	pubPEM, err := marshalPublicKeyPEM(key.PublicKey())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return oops.Wrapf(err, "failed to create key directory")
		}
	}
	if err := os.WriteFile(out, privPEM, 0o600); err != nil {
		return oops.Wrapf(err, "failed to write private key")
	}
	if err := os.WriteFile(out+".pub", pubPEM, 0o644); err != nil {
		return oops.Wrapf(err, "failed to write public key")
	}
	log.WithField("key_size", keySize).WithField("path", out).Debug("generated RSA key pair")
	cmd.Printf("wrote %s and %s.pub\n", out, out)
	return nil
}

func loadPrivateKey(cfg *config.CryptoConfig, path string) (*rsa.PrivateKey, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, oops.Wrapf(err, "failed to read private key")
	}
	loaded, err := provider.LoadPEMPrivateKey(data, nil)
	if err != nil {
		return nil, err
	}
	key, ok := loaded.(*rsa.PrivateKey)
	if !ok {
		return nil, types.TypeErrorf("%s does not hold an RSA private key", path)
	}
	return key, nil
}

func loadPublicKey(cfg *config.CryptoConfig, path string) (*rsa.PublicKey, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, oops.Wrapf(err, "failed to read public key")
	}
	loaded, err := provider.LoadPEMPublicKey(data)
	if err != nil {
		return nil, err
	}
	key, ok := loaded.(*rsa.PublicKey)
	if !ok {
		return nil, types.TypeErrorf("%s does not hold an RSA public key", path)
	}
	return key, nil
}

func runSign(cmd *cobra.Command, _ []string) error {
	cfg := config.NewCryptoConfigFromViper()
	keyPath, _ := cmd.Flags().GetString("key")
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	key, err := loadPrivateKey(cfg, keyPath)
	if err != nil {
		return err
	}
	alg, err := resolveHash(cfg.RSA.Hash)
	if err != nil {
		return err
	}
	pad, err := resolveSignaturePadding(cfg.RSA.Padding, alg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Clean(in))
	if err != nil {
		return oops.Wrapf(err, "failed to read input")
	}

	signer, err := key.Signer(pad, alg)
	if err != nil {
		return err
	}
	if err := signer.Update(data); err != nil {
		return err
	}
	signature, err := signer.Finalize()
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, signature, 0o644); err != nil {
		return oops.Wrapf(err, "failed to write signature")
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg := config.NewCryptoConfigFromViper()
	keyPath, _ := cmd.Flags().GetString("key")
	in, _ := cmd.Flags().GetString("in")
	sigPath, _ := cmd.Flags().GetString("signature")

	key, err := loadPublicKey(cfg, keyPath)
	if err != nil {
		return err
	}
	alg, err := resolveHash(cfg.RSA.Hash)
	if err != nil {
		return err
	}
	pad, err := resolveSignaturePadding(cfg.RSA.Padding, alg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Clean(in))
	if err != nil {
		return oops.Wrapf(err, "failed to read input")
	}
	signature, err := os.ReadFile(filepath.Clean(sigPath))
	if err != nil {
		return oops.Wrapf(err, "failed to read signature")
	}

	verifier, err := key.Verifier(signature, pad, alg)
	if err != nil {
		return err
	}
	if err := verifier.Update(data); err != nil {
		return err
	}
	if err := verifier.Verify(); err != nil {
		return err
	}
	cmd.Println("signature is valid")
	return nil
}

func runEncrypt(cmd *cobra.Command, _ []string) error {
	cfg := config.NewCryptoConfigFromViper()
	keyPath, _ := cmd.Flags().GetString("key")
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	key, err := loadPublicKey(cfg, keyPath)
	if err != nil {
		return err
	}
	alg, err := resolveHash(cfg.RSA.Hash)
	if err != nil {
		return err
	}
	pad, err := resolveEncryptionPadding(encryptionPaddingName(cfg), alg)
	if err != nil {
		return err
	}

	plaintext, err := os.ReadFile(filepath.Clean(in))
	if err != nil {
		return oops.Wrapf(err, "failed to read input")
	}
	ciphertext, err := key.Encrypt(plaintext, pad)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, ciphertext, 0o644); err != nil {
		return oops.Wrapf(err, "failed to write ciphertext")
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}

func runDecrypt(cmd *cobra.Command, _ []string) error {
	cfg := config.NewCryptoConfigFromViper()
	keyPath, _ := cmd.Flags().GetString("key")
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")

	key, err := loadPrivateKey(cfg, keyPath)
	if err != nil {
		return err
	}
	alg, err := resolveHash(cfg.RSA.Hash)
	if err != nil {
		return err
	}
	pad, err := resolveEncryptionPadding(encryptionPaddingName(cfg), alg)
	if err != nil {
		return err
	}

	ciphertext, err := os.ReadFile(filepath.Clean(in))
	if err != nil {
		return oops.Wrapf(err, "failed to read input")
	}
	plaintext, err := key.Decrypt(ciphertext, pad)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, plaintext, 0o600); err != nil {
		return oops.Wrapf(err, "failed to write plaintext")
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}

// encryptionPaddingName maps the configured signature padding to the
// encryption scheme of the same family.
func encryptionPaddingName(cfg *config.CryptoConfig) string {
	if cfg.RSA.Padding == "pss" {
		return "oaep"
	}
	return cfg.RSA.Padding
}
