package safe

import (
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CreateDelegateMessageHash returns the hash a Safe owner signs to add or remove
// a delegate. It only stays valid for the current wall-clock hour.
func CreateDelegateMessageHash(delegateAddress string, now time.Time) common.Hash {
	totp := unixHourBucket(now)
	return crypto.Keccak256Hash([]byte(delegateAddress + strconv.FormatInt(totp, 10)))
}
