package safe

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// Operation is the kind of call a Safe performs
type Operation uint8

const (
	Call         Operation = 0
	DelegateCall Operation = 1
)

func (o Operation) String() string {
	switch o {
	case Call:
		return "CALL"
	case DelegateCall:
		return "DELEGATE_CALL"
	default:
		return fmt.Sprintf("OPERATION_%d", uint8(o))
	}
}

// signatureLength is the size of the static part of every Safe signature
const signatureLength = 65

var (
	domainTypeHash       = crypto.Keccak256Hash([]byte("EIP712Domain(uint256 chainId,address verifyingContract)"))
	legacyDomainTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(address verifyingContract)"))
	safeTxTypeHash       = crypto.Keccak256Hash([]byte("SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas,uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)"))
)

// ErrContractSignature is returned when signatures with a dynamic part would
// have to be reordered
var ErrContractSignature = errors.New("cannot reorder contract signatures")

// SafeTx is a Safe multisig transaction ready to be signed or executed
type SafeTx struct {
	// ChainID selects the EIP-712 domain. Nil uses the pre-1.3.0 domain without chain id.
	ChainID        *big.Int
	Safe           common.Address
	To             common.Address
	Value          *big.Int
	Data           []byte
	Operation      Operation
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       common.Address
	RefundReceiver common.Address
	Nonce          *big.Int
	Signatures     []byte

	// TxHash is set once the transaction was executed on chain
	TxHash *common.Hash
}

func addressWord(a common.Address) []byte {
	return common.BytesToHash(a.Bytes()).Bytes()
}

func uintWord(v *big.Int) []byte {
	return math.U256Bytes(new(big.Int).Set(orZero(v)))
}

// DomainSeparator returns the EIP-712 domain separator of the Safe
func (tx *SafeTx) DomainSeparator() common.Hash {
	if tx.ChainID == nil {
		return crypto.Keccak256Hash(legacyDomainTypeHash.Bytes(), addressWord(tx.Safe))
	}
	return crypto.Keccak256Hash(domainTypeHash.Bytes(), uintWord(tx.ChainID), addressWord(tx.Safe))
}

// StructHash returns the EIP-712 hash of the SafeTx struct
func (tx *SafeTx) StructHash() common.Hash {
	return crypto.Keccak256Hash(
		safeTxTypeHash.Bytes(),
		addressWord(tx.To),
		uintWord(tx.Value),
		crypto.Keccak256(tx.Data),
		uintWord(new(big.Int).SetUint64(uint64(tx.Operation))),
		uintWord(tx.SafeTxGas),
		uintWord(tx.BaseGas),
		uintWord(tx.GasPrice),
		addressWord(tx.GasToken),
		addressWord(tx.RefundReceiver),
		uintWord(tx.Nonce),
	)
}

// SafeTxHash returns the hash owners sign, as computed by the Safe contract
func (tx *SafeTx) SafeTxHash() common.Hash {
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, tx.DomainSeparator().Bytes(), tx.StructHash().Bytes())
}

type ownerSignature struct {
	owner     common.Address
	signature []byte
	contract  bool
}

// ownerSignatures splits the static part of Signatures and recovers the owner
// of each entry
func (tx *SafeTx) ownerSignatures() ([]ownerSignature, error) {
	sigs := tx.Signatures
	end := len(sigs)
	hash := tx.SafeTxHash()

	var out []ownerSignature
	for offset := 0; offset+signatureLength <= end; offset += signatureLength {
		chunk := sigs[offset : offset+signatureLength]
		r, s, v := chunk[:32], chunk[32:64], chunk[64]

		entry := ownerSignature{signature: chunk}
		switch {
		case v == 0:
			// Contract signature: r is the owner, s the offset of the dynamic part
			entry.owner = common.BytesToAddress(r)
			entry.contract = true
			if dynamic := new(big.Int).SetBytes(s); dynamic.IsInt64() && dynamic.Int64() < int64(end) {
				end = int(dynamic.Int64())
			}
		case v == 1:
			// Approved hash: r is the owner
			entry.owner = common.BytesToAddress(r)
		case v > 30:
			owner, err := recoverAddress(accounts.TextHash(hash.Bytes()), r, s, v-4)
			if err != nil {
				return nil, fmt.Errorf("invalid eth_sign signature at %d: %w", offset, err)
			}
			entry.owner = owner
		default:
			owner, err := recoverAddress(hash.Bytes(), r, s, v)
			if err != nil {
				return nil, fmt.Errorf("invalid signature at %d: %w", offset, err)
			}
			entry.owner = owner
		}
		out = append(out, entry)
	}
	return out, nil
}

func recoverAddress(hash, r, s []byte, v byte) (common.Address, error) {
	sig := make([]byte, signatureLength)
	copy(sig[:32], r)
	copy(sig[32:64], s)
	sig[64] = v - 27

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Signers returns the owners that signed the transaction, in signature order
func (tx *SafeTx) Signers() ([]common.Address, error) {
	entries, err := tx.ownerSignatures()
	if err != nil {
		return nil, err
	}
	signers := make([]common.Address, 0, len(entries))
	for _, e := range entries {
		signers = append(signers, e.owner)
	}
	return signers, nil
}

// SortedSigners returns the signers ordered by ascending address
func (tx *SafeTx) SortedSigners() ([]common.Address, error) {
	signers, err := tx.Signers()
	if err != nil {
		return nil, err
	}
	sort.Slice(signers, func(i, j int) bool {
		return bytes.Compare(signers[i].Bytes(), signers[j].Bytes()) < 0
	})
	return signers, nil
}

// Sign signs the SafeTxHash and merges the signature into Signatures, keeping
// them ordered by owner. A previous signature of the same owner is replaced.
func (tx *SafeTx) Sign(signer Signer) ([]byte, error) {
	entries, err := tx.ownerSignatures()
	if err != nil {
		return nil, err
	}

	signature, err := signer.SignHash(tx.SafeTxHash())
	if err != nil {
		return nil, fmt.Errorf("failed to sign safe tx hash: %w", err)
	}

	merged := []ownerSignature{{owner: signer.Address(), signature: signature}}
	for _, e := range entries {
		if e.contract {
			return nil, ErrContractSignature
		}
		if e.owner != signer.Address() {
			merged = append(merged, e)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		return bytes.Compare(merged[i].owner.Bytes(), merged[j].owner.Bytes()) < 0
	})

	signatures := make([]byte, 0, len(merged)*signatureLength)
	for _, e := range merged {
		signatures = append(signatures, e.signature...)
	}
	tx.Signatures = signatures

	return signature, nil
}
