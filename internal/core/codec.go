package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// EncodeTransactions serializes the collection as a JSON array. A nil slice
// encodes as [] so the payload is always an array.
func EncodeTransactions(txs []Transaction) ([]byte, error) {
	if txs == nil {
		txs = []Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("encode transactions: %w", err)
	}
	return data, nil
}

// DecodeTransactions parses a JSON array of transactions. A JSON null decodes
// to an empty collection.
func DecodeTransactions(data []byte) ([]Transaction, error) {
	var txs []Transaction
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode transactions: trailing data after array")
	}
	return txs, nil
}

// ReadTransactions decodes a collection from r.
func ReadTransactions(r io.Reader) ([]Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	return DecodeTransactions(data)
}
