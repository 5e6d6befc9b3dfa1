package safe

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// ParseSignatures returns the signatures to execute a transaction with.
//
// Executed transactions carry the signatures used on chain and those are
// returned as they are. Otherwise the EOA confirmations are concatenated,
// ordered by owner address. The result is never nil.
func ParseSignatures(tx *MultisigTransaction) []byte {
	if tx.Signatures != nil && *tx.Signatures != "" {
		return common.FromHex(*tx.Signatures)
	}

	eoa := lo.Filter(tx.Confirmations, func(c Confirmation, _ int) bool {
		return c.SignatureType == SignatureTypeEOA
	})
	sort.SliceStable(eoa, func(i, j int) bool {
		return bytes.Compare(ownerKey(eoa[i].Owner), ownerKey(eoa[j].Owner)) < 0
	})

	signatures := []byte{}
	for _, c := range eoa {
		signatures = append(signatures, common.FromHex(c.Signature)...)
	}
	return signatures
}

// ownerKey left pads an owner so byte order equals numeric order
func ownerKey(owner string) []byte {
	return common.HexToAddress(owner).Bytes()
}
