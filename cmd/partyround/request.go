package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/service/apiserver"
)

// DoRequest calls the json rpc method of the node
func DoRequest(hostURL string, Method string, Params []interface{}) (interface{}, error) {
	req := &apiserver.JRPCRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  Method,
		Params:  Params,
	}
	bs, err := json.Marshal(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	r, err := http.Post(hostURL+"/api/endpoints/http", "application/json", bytes.NewReader(bs))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer r.Body.Close()

	var res apiserver.JRPCResponse
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		return nil, errors.WithStack(err)
	}
	if res.Error != nil {
		return nil, errors.New(fmt.Sprint(res.Error))
	}
	return res.Result, nil
}
