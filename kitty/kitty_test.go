// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty_test

import (
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/eventbus"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/host"
	"github.com/bitmark-inc/kittyd/host/mocks"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/ledger"
	"github.com/bitmark-inc/kittyd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test-index.leveldb"

	pledge = host.Balance(10)
)

var (
	alice *account.Account
	bob   *account.Account
	carol *account.Account

	// values the entropy and clock mocks hand out; tests set these
	entropyHash   [32]byte
	entropyHeight host.BlockNumber

	recorder = &eventbus.Recorder{}
)

// reporter so the mock controller can outlive any single test
type mockReporter struct{}

func (mockReporter) Errorf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (mockReporter) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func TestMain(m *testing.M) {
	if err := setup(); nil != err {
		os.Exit(1)
	}
	result := m.Run()
	teardown()
	os.Exit(result)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup() error {
	removeFiles()
	os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	if err := storage.Initialise(databaseFileName); nil != err {
		return err
	}
	if err := ledger.Initialise(storage.Pool.Accounts); nil != err {
		return err
	}

	ctrl := gomock.NewController(mockReporter{})

	random := mocks.NewMockEntropy(ctrl)
	random.EXPECT().Random(gomock.Any()).DoAndReturn(func(domain []byte) ([32]byte, host.BlockNumber) {
		return entropyHash, entropyHeight
	}).AnyTimes()

	deps := kitty.Dependencies{
		Kitties:  storage.Pool.Kitties,
		Owners:   storage.Pool.KittyOwners,
		Counters: storage.Pool.Counters,
		Random:   random,
		Balances: ledger.Get(),
		Events:   recorder,
	}
	params := host.Parameters{
		Pledge:         pledge,
		MaxKittyOwned:  100,
		MaxClaimLength: 64,
	}
	if err := kitty.Initialise(deps, params); nil != err {
		return err
	}

	aliceKey := make([]byte, account.PublicKeySize)
	bobKey := make([]byte, account.PublicKeySize)
	carolKey := make([]byte, account.PublicKeySize)
	aliceKey[0] = 0xa1
	bobKey[0] = 0xb0
	carolKey[0] = 0xca
	alice, _ = account.New(aliceKey)
	bob, _ = account.New(bobKey)
	carol, _ = account.New(carolKey)
	return nil
}

func teardown() {
	_ = kitty.Finalise()
	_ = ledger.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// run a mutation inside a committed transaction
func inTransaction(t *testing.T, f func()) {
	t.Helper()
	trx := storage.TransactionHandle()
	if err := trx.Begin(); nil != err {
		t.Fatalf("cannot begin transaction: %s", err)
	}
	f()
	if err := trx.Commit(); nil != err {
		t.Fatalf("cannot commit transaction: %s", err)
	}
}

// wipe and refill the three test accounts
func resetAccounts(t *testing.T, aliceFree host.Balance, bobFree host.Balance, carolFree host.Balance) {
	t.Helper()
	inTransaction(t, func() {
		storage.Pool.Accounts.Delete(alice.Bytes())
		storage.Pool.Accounts.Delete(bob.Bytes())
		storage.Pool.Accounts.Delete(carol.Bytes())
	})
	inTransaction(t, func() {
		ledger.Endow(alice, aliceFree)
		ledger.Endow(bob, bobFree)
		ledger.Endow(carol, carolFree)
	})
	recorder.Reset()
}

func mintKitty(t *testing.T, owner *account.Account) kitty.ID {
	t.Helper()
	id, err := kitty.CreateKitty(owner)
	if nil != err {
		t.Fatalf("cannot mint kitty: %s", err)
	}
	return id
}

func TestCreateKitty(t *testing.T) {
	resetAccounts(t, 100, 0, 0)
	entropyHash = [32]byte{0x02, 0x17}
	entropyHeight = 5

	before, err := kitty.Count()
	assert.Nil(t, err, "wrong error")

	id := mintKitty(t, alice)
	assert.Equal(t, before, id, "wrong id assigned")

	after, err := kitty.Count()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, before+1, after, "wrong count")

	k, err := kitty.Info(id)
	assert.Nil(t, err, "wrong error")
	assert.True(t, k.Owner.Equals(alice), "wrong owner")
	assert.Nil(t, k.Price, "fresh kitty listed for sale")
	assert.Equal(t, pledge, k.Deposit, "wrong deposit")

	assert.Equal(t, host.Balance(90), ledger.FreeBalance(alice), "wrong free balance")
	assert.Equal(t, pledge, ledger.ReservedBalance(alice), "wrong reserved balance")

	events := recorder.Events()
	assert.Equal(t, 1, len(events), "wrong event count")
	created, ok := events[0].(kitty.Created)
	assert.True(t, ok, "wrong event type")
	assert.Equal(t, id, created.KittyID, "wrong event id")
	assert.True(t, created.Owner.Equals(alice), "wrong event owner")
}

func TestCreateKittyWithoutFunds(t *testing.T) {
	resetAccounts(t, 0, 0, pledge-1)
	entropyHash = [32]byte{0x33}
	entropyHeight = 6

	before, _ := kitty.Count()

	_, err := kitty.CreateKitty(carol)
	assert.Equal(t, fault.ErrInsufficientBalance, err, "wrong error")

	after, _ := kitty.Count()
	assert.Equal(t, before, after, "failed mint bumped the count")
	assert.Equal(t, pledge-1, ledger.FreeBalance(carol), "wrong free balance")
	assert.Equal(t, host.Balance(0), ledger.ReservedBalance(carol), "failed mint left a reservation")
	assert.Equal(t, 0, len(recorder.Events()), "failed mint emitted events")
}

func TestTransfer(t *testing.T) {
	resetAccounts(t, 100, 0, 0)
	entropyHash = [32]byte{0x44}
	entropyHeight = 7

	id := mintKitty(t, alice)
	recorder.Reset()

	err := kitty.Transfer(alice, alice, id)
	assert.Equal(t, fault.ErrTransferToSelf, err, "wrong error")

	err = kitty.Transfer(bob, carol, id)
	assert.Equal(t, fault.ErrNotKittyOwner, err, "wrong error")

	err = kitty.Transfer(alice, bob, kitty.ID(math.MaxUint64))
	assert.Equal(t, fault.ErrKittyDoesNotExist, err, "wrong error")

	assert.Equal(t, 0, len(recorder.Events()), "failed transfers emitted events")

	err = kitty.Transfer(alice, bob, id)
	assert.Nil(t, err, "wrong error")

	k, err := kitty.Info(id)
	assert.Nil(t, err, "wrong error")
	assert.True(t, k.Owner.Equals(bob), "wrong owner after transfer")
	assert.Equal(t, pledge, k.Deposit, "wrong deposit after transfer")

	// the reserved deposit followed the token
	assert.Equal(t, host.Balance(0), ledger.ReservedBalance(alice), "deposit left on sender")
	assert.Equal(t, pledge, ledger.ReservedBalance(bob), "deposit missing on recipient")
	assert.Equal(t, host.Balance(0), ledger.FreeBalance(bob), "transfer touched free balance")

	events := recorder.Events()
	assert.Equal(t, 1, len(events), "wrong event count")
	transferred, ok := events[0].(kitty.Transferred)
	assert.True(t, ok, "wrong event type")
	assert.True(t, transferred.From.Equals(alice), "wrong event source")
	assert.True(t, transferred.To.Equals(bob), "wrong event destination")
	assert.Equal(t, id, transferred.KittyID, "wrong event id")
}

func TestSellAndBuy(t *testing.T) {
	resetAccounts(t, 100, 100, 0)
	entropyHash = [32]byte{0x55}
	entropyHeight = 8

	id := mintKitty(t, alice)
	recorder.Reset()

	ask := host.Balance(40)
	err := kitty.SellKitty(bob, id, &ask)
	assert.Equal(t, fault.ErrNotKittyOwner, err, "wrong error")

	err = kitty.SellKitty(alice, id, &ask)
	assert.Nil(t, err, "wrong error")

	k, err := kitty.Info(id)
	assert.Nil(t, err, "wrong error")
	assert.NotNil(t, k.Price, "asking price not stored")
	assert.Equal(t, ask, *k.Price, "wrong asking price")

	events := recorder.Events()
	assert.Equal(t, 1, len(events), "wrong event count")
	priceSet, ok := events[0].(kitty.PriceSet)
	assert.True(t, ok, "wrong event type")
	assert.Equal(t, ask, *priceSet.Price, "wrong event price")
	recorder.Reset()

	// a bid above the ask pays the full bid
	err = kitty.BuyKitty(bob, id, 45)
	assert.Nil(t, err, "wrong error")

	k, err = kitty.Info(id)
	assert.Nil(t, err, "wrong error")
	assert.True(t, k.Owner.Equals(bob), "wrong owner after purchase")
	assert.Nil(t, k.Price, "listing survived the purchase")

	assert.Equal(t, host.Balance(90+45), ledger.FreeBalance(alice), "wrong seller free balance")
	assert.Equal(t, host.Balance(0), ledger.ReservedBalance(alice), "deposit left on seller")
	assert.Equal(t, host.Balance(100-45), ledger.FreeBalance(bob), "wrong buyer free balance")
	assert.Equal(t, pledge, ledger.ReservedBalance(bob), "deposit missing on buyer")

	events = recorder.Events()
	assert.Equal(t, 1, len(events), "wrong event count")
	bought, ok := events[0].(kitty.Bought)
	assert.True(t, ok, "wrong event type")
	assert.True(t, bought.Buyer.Equals(bob), "wrong event buyer")
	assert.True(t, bought.Seller.Equals(alice), "wrong event seller")
	assert.Equal(t, host.Balance(45), bought.BidPrice, "wrong event bid")

	// withdrawing from sale clears the listing
	err = kitty.SellKitty(bob, id, nil)
	assert.Nil(t, err, "wrong error")
	k, _ = kitty.Info(id)
	assert.Nil(t, k.Price, "withdrawal left a listing")
}

func TestBuyRejections(t *testing.T) {
	resetAccounts(t, 100, 100, 20)
	entropyHash = [32]byte{0x66}
	entropyHeight = 9

	id := mintKitty(t, alice)
	recorder.Reset()

	// not listed
	err := kitty.BuyKitty(bob, id, 50)
	assert.Equal(t, fault.ErrKittyNotForSale, err, "wrong error")

	ask := host.Balance(50)
	err = kitty.SellKitty(alice, id, &ask)
	assert.Nil(t, err, "wrong error")
	recorder.Reset()

	// owner bidding on their own token
	err = kitty.BuyKitty(alice, id, 50)
	assert.Equal(t, fault.ErrBuyerIsKittyOwner, err, "wrong error")

	// bid below the ask
	err = kitty.BuyKitty(bob, id, 49)
	assert.Equal(t, fault.ErrKittyBidPriceTooLow, err, "wrong error")

	// bid exceeds the buyer's free balance; the deposit repatriation
	// that ran before the check must be rolled back
	err = kitty.BuyKitty(carol, id, 50)
	assert.Equal(t, fault.ErrNotEnoughBalance, err, "wrong error")

	k, err := kitty.Info(id)
	assert.Nil(t, err, "wrong error")
	assert.True(t, k.Owner.Equals(alice), "failed purchase moved the token")
	assert.NotNil(t, k.Price, "failed purchase cleared the listing")
	assert.Equal(t, pledge, ledger.ReservedBalance(alice), "failed purchase moved the deposit")
	assert.Equal(t, host.Balance(0), ledger.ReservedBalance(carol), "failed purchase left a deposit")
	assert.Equal(t, host.Balance(20), ledger.FreeBalance(carol), "failed purchase moved funds")
	assert.Equal(t, 0, len(recorder.Events()), "failed purchases emitted events")
}

func TestCounterOverflow(t *testing.T) {
	resetAccounts(t, 100, 0, 0)
	entropyHash = [32]byte{0x77}
	entropyHeight = 10

	countKey := []byte("kitty")
	saved, _ := storage.Pool.Counters.GetN(countKey)

	inTransaction(t, func() {
		storage.Pool.Counters.PutN(countKey, math.MaxUint64)
	})

	_, err := kitty.CreateKitty(alice)
	assert.Equal(t, fault.ErrKittyCountOverflow, err, "wrong error")

	current, _ := storage.Pool.Counters.GetN(countKey)
	assert.Equal(t, uint64(math.MaxUint64), current, "failed mint changed the counter")
	assert.Equal(t, host.Balance(0), ledger.ReservedBalance(alice), "failed mint left a reservation")
	assert.Equal(t, host.Balance(100), ledger.FreeBalance(alice), "failed mint moved funds")
	assert.Equal(t, 0, len(recorder.Events()), "failed mint emitted events")

	inTransaction(t, func() {
		storage.Pool.Counters.PutN(countKey, saved)
	})
}

func TestScan(t *testing.T) {
	resetAccounts(t, 100, 100, 0)
	entropyHash = [32]byte{0x88}
	entropyHeight = 11

	idA := mintKitty(t, alice)
	idB := mintKitty(t, bob)

	owners := map[kitty.ID]*account.Account{}
	err := kitty.Scan(func(id kitty.ID, k *kitty.Kitty) bool {
		owners[id] = k.Owner
		return true
	})
	assert.Nil(t, err, "wrong error")

	assert.True(t, owners[idA].Equals(alice), "wrong owner in scan")
	assert.True(t, owners[idB].Equals(bob), "wrong owner in scan")

	// the owner index answers without touching full records
	ids, err := kitty.OwnedBy(bob)
	assert.Nil(t, err, "wrong error")
	assert.Contains(t, ids, idB, "owned kitty missing from index")
	assert.NotContains(t, ids, idA, "foreign kitty in index")
}
