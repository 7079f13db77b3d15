package viewchain_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/common/key"
	"github.com/meverselabs/partyround/contract/token"
	"github.com/meverselabs/partyround/core/chain"
	"github.com/meverselabs/partyround/core/store"
	"github.com/meverselabs/partyround/core/types"
	"github.com/meverselabs/partyround/service/apiserver"
	"github.com/meverselabs/partyround/service/apiserver/viewchain"
)

type rpcResponse struct {
	ID     interface{}     `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type testNode struct {
	cn    *chain.Chain
	api   *apiserver.APIServer
	srv   *httptest.Server
	token common.Address
	k     *key.MemoryKey
}

func newTestNode(t *testing.T) *testNode {
	st, err := store.NewMemoryStore()
	require.NoError(t, err)
	cn := chain.NewChain(st, types.NewFixedClock(1000))
	api := apiserver.NewAPIServer()
	require.NoError(t, cn.RegisterService(api))
	require.NoError(t, cn.Init())
	require.NoError(t, viewchain.NewViewchain(api, cn))
	require.Error(t, viewchain.NewViewchain(api, cn))

	k, err := key.NewMemoryKey()
	require.NoError(t, err)
	classID, err := types.RegisterContractType(&token.TokenContract{})
	require.NoError(t, err)
	bs, _, err := bin.WriterToBytes(&token.TokenContractConstruction{
		Name:             "Base",
		Symbol:           "BASE",
		InitialSupplyMap: map[common.Address]uint64{k.Address(): 100},
	})
	require.NoError(t, err)
	tokenAddr, err := cn.DeployContract(k.Address(), classID, bs)
	require.NoError(t, err)

	n := &testNode{cn: cn, api: api, srv: httptest.NewServer(api.Handler()), token: tokenAddr, k: k}
	t.Cleanup(func() {
		n.srv.Close()
		cn.Close()
	})
	return n
}

func (n *testNode) rpc(t *testing.T, method string, params ...interface{}) *rpcResponse {
	body, err := json.Marshal(&apiserver.JRPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	require.NoError(t, err)
	resp, err := http.Post(n.srv.URL+"/api/endpoints/http", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return &res
}

func (n *testNode) signedTransfer(t *testing.T, seq uint64, to common.Address, am string) []interface{} {
	tx := &types.Transaction{Seq: seq, To: n.token, Method: "Transfer", Args: []string{to.String(), am}}
	sig, err := n.k.Sign(tx.Hash())
	require.NoError(t, err)
	return []interface{}{n.token.String(), tx.Method, tx.Args, seq, hexutil.Encode(sig)}
}

func TestViewCall(t *testing.T) {
	n := newTestNode(t)

	res := n.rpc(t, "view.call", n.token.String(), "BalanceOf", []interface{}{n.k.Address().String()})
	require.Empty(t, res.Error)
	assert.JSONEq(t, `["100"]`, string(res.Result))

	res = n.rpc(t, "view.call", n.token.String(), "Symbol")
	require.Empty(t, res.Error)
	assert.JSONEq(t, `["BASE"]`, string(res.Result))

	res = n.rpc(t, "view.isContract", n.token.String())
	assert.JSONEq(t, `true`, string(res.Result))

	res = n.rpc(t, "view.seq", n.k.Address().String())
	assert.JSONEq(t, `"0x0"`, string(res.Result))

	res = n.rpc(t, "view.call", common.HexToAddress("0x1234").String(), "Symbol")
	assert.NotEmpty(t, res.Error)

	res = n.rpc(t, "view.unknown")
	assert.Equal(t, apiserver.ErrInvalidMethod.Error(), res.Error)
	res = n.rpc(t, "nosub")
	assert.Equal(t, apiserver.ErrInvalidMethod.Error(), res.Error)

	res = n.rpc(t, "view.version")
	assert.Contains(t, string(res.Result), "PartyRound/"+viewchain.ClientVersion)
}

func TestSendTxStreamsReceipt(t *testing.T) {
	n := newTestNode(t)
	bob := common.HexToAddress("0xb0")

	wsURL := "ws" + strings.TrimPrefix(n.srv.URL, "http") + "/api/events?contract=" + n.token.String()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return n.api.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	res := n.rpc(t, "view.sendTx", n.signedTransfer(t, 0, bob, "30")...)
	require.Empty(t, res.Error)
	var r chain.Receipt
	require.NoError(t, json.Unmarshal(res.Result, &r))
	assert.True(t, r.Success())
	assert.Equal(t, []string{"true"}, r.Result)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var pushed chain.Receipt
	require.NoError(t, conn.ReadJSON(&pushed))
	assert.Equal(t, r.TxHash, pushed.TxHash)
	require.Len(t, pushed.Events, 1)
	assert.Equal(t, "Transfer", pushed.Events[0].Type)

	res = n.rpc(t, "view.sendTx", n.signedTransfer(t, 0, bob, "30")...)
	assert.Contains(t, res.Error, chain.ErrInvalidSequence.Error())

	res = n.rpc(t, "view.eventCount")
	assert.JSONEq(t, `1`, string(res.Result))
	res = n.rpc(t, "view.call", n.token.String(), "BalanceOf", []interface{}{bob.String()})
	assert.JSONEq(t, `["30"]`, string(res.Result))
}

func TestWebsocketEndpoint(t *testing.T) {
	n := newTestNode(t)
	wsURL := "ws" + strings.TrimPrefix(n.srv.URL, "http") + "/api/endpoints/websocket"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(&apiserver.JRPCRequest{JSONRPC: "2.0", ID: 7, Method: "view.stateHash"}))
	var res rpcResponse
	require.NoError(t, conn.ReadJSON(&res))
	assert.Empty(t, res.Error)
	assert.JSONEq(t, `7`, string(mustJSON(t, res.ID)))
	assert.NotEmpty(t, res.Result)
}

func TestMetricsEndpoint(t *testing.T) {
	n := newTestNode(t)
	resp, err := http.Get(n.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	bs, err := json.Marshal(v)
	require.NoError(t, err)
	return bs
}
