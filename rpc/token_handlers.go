package rpc

import (
	"net/http"
)

type tokenBalanceParams struct {
	Address string `json:"address"`
}

type tokenAllowanceParams struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

type tokenMintParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type tokenBurnParams struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type tokenApproveParams struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type tokenTransferParams struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type tokenTransferFromParams struct {
	Caller string `json:"caller"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type tokenInfoResult struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	Admin       string `json:"admin"`
	TotalSupply string `json:"totalSupply"`
}

func (s *Server) handleTokenInfo(w http.ResponseWriter, req *RPCRequest) {
	info := s.node.TokenInfo()
	writeResult(w, req.ID, tokenInfoResult{
		Name:        info.Name,
		Symbol:      info.Symbol,
		Decimals:    info.Decimals,
		Admin:       info.Admin.Hex(),
		TotalSupply: info.TotalSupply.String(),
	})
}

func (s *Server) handleTokenBalanceOf(w http.ResponseWriter, req *RPCRequest) {
	var p tokenBalanceParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	addr, err := parseAddress("address", p.Address)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	writeResult(w, req.ID, s.node.TokenBalanceOf(addr).String())
}

func (s *Server) handleTokenAllowance(w http.ResponseWriter, req *RPCRequest) {
	var p tokenAllowanceParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	owner, err := parseAddress("owner", p.Owner)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	spender, err := parseAddress("spender", p.Spender)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	writeResult(w, req.ID, s.node.TokenAllowance(owner, spender).String())
}

func (s *Server) handleTokenMint(w http.ResponseWriter, req *RPCRequest) {
	var p tokenMintParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.TokenMint(caller, to, amount); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleTokenBurn(w http.ResponseWriter, req *RPCRequest) {
	var p tokenBurnParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.TokenBurn(caller, amount); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleTokenApprove(w http.ResponseWriter, req *RPCRequest) {
	var p tokenApproveParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	spender, err := parseAddress("spender", p.Spender)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.TokenApprove(caller, spender, amount); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleTokenTransfer(w http.ResponseWriter, req *RPCRequest) {
	var p tokenTransferParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.TokenTransfer(caller, to, amount); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleTokenTransferFrom(w http.ResponseWriter, req *RPCRequest) {
	var p tokenTransferFromParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	from, err := parseAddress("from", p.From)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.TokenTransferFrom(caller, from, to, amount); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}
