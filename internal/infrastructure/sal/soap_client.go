// Package sal implementa o cliente da ponte SOAP do SAL (Sistema de
// Acréscimos Legais), o emissor oficial de guias GPS da Previdência.
package sal

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gesielr/guiasMEIlast/internal/application/emission"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// ── Constantes de ambiente ────────────────────────────────────────────────────

const (
	// AppEnvDev ambiente local: simula o SAL sem chamada de rede.
	AppEnvDev = "dev"
	// AppEnvTest ambiente de homologação da ponte SAL.
	AppEnvTest = "test"
	// AppEnvProd ambiente de produção.
	AppEnvProd = "prod"

	soapURLTest = "https://sal-hom.previdencia.gov.br/ws/GuiaGPSService.svc"
	soapURLProd = "https://sal.previdencia.gov.br/ws/GuiaGPSService.svc"

	soapNS         = "http://schemas.xmlsoap.org/soap/envelope/"
	soapNSTempuri  = "http://tempuri.org/"
	soapActionBase = "http://tempuri.org/IGuiaGPSService/"

	// Formato de data do legado (dd/mm/aaaa).
	legacyDateLayout = "02/01/2006"
)

var _ emission.AuthorityClient = (*Client)(nil)

var decimalHundred = decimal.NewFromInt(100)

// Client fala com a ponte SOAP do SAL. Em ambiente dev devolve uma emissão
// simulada calculada localmente, sem tocar a rede.
type Client struct {
	httpClient *http.Client
	env        string
	baseURL    string
	log        *logger.Logger
}

// NewClient constrói o cliente. baseURL vazio usa o endpoint padrão do
// ambiente. O timeout de rede é generoso (60 s): o legado do SAL costuma
// demorar vários segundos.
func NewClient(env, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		env:        env,
		baseURL:    baseURL,
		log:        log,
	}
}

// ── Estruturas SOAP de requisição ─────────────────────────────────────────────

type soapEnvelope struct {
	XMLName xml.Name   `xml:"s:Envelope"`
	XmlnsS  string     `xml:"xmlns:s,attr"`
	Header  soapHeader `xml:"s:Header"`
	Body    soapBody   `xml:"s:Body"`
}

type soapHeader struct{}

type soapBody struct {
	Content interface{}
}

func (b soapBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "s:Body"
	e.EncodeToken(start)
	if err := e.Encode(b.Content); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// emitirGuiaBody corpo da operação EmitirGuia.
type emitirGuiaBody struct {
	XMLName         xml.Name `xml:"EmitirGuia"`
	Xmlns           string   `xml:"xmlns,attr"`
	NIT             string   `xml:"nit"`
	CodigoPagamento string   `xml:"codigoPagamento"`
	Competencia     string   `xml:"competencia"` // MM/AAAA
	Valor           string   `xml:"valor"`       // ponto decimal, duas casas
}

// ── Estruturas SOAP de resposta ───────────────────────────────────────────────

type soapResponseEnvelope struct {
	Body soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	EmitirGuiaResponse *emitirGuiaResponse `xml:"EmitirGuiaResponse"`
	Fault              *soapFault          `xml:"Fault"`
}

type emitirGuiaResponse struct {
	// Result carrega um documento XML embutido (string escapada) com a guia.
	Result string `xml:"EmitirGuiaResult"`
}

type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

// ── Emit ──────────────────────────────────────────────────────────────────────

// Emit solicita a emissão oficial da guia ao SAL.
func (c *Client) Emit(ctx context.Context, req emission.AuthorityRequest) (*emission.AuthorityResult, error) {
	if c.env == AppEnvDev {
		return c.simulate(req)
	}

	envelope := soapEnvelope{
		XmlnsS: soapNS,
		Body: soapBody{Content: &emitirGuiaBody{
			Xmlns:           soapNSTempuri,
			NIT:             req.TaxpayerID,
			CodigoPagamento: req.PaymentCode,
			Competencia:     req.Competence.String(),
			Valor:           req.Amount.StringFixed(2),
		}},
	}

	xmlPayload, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sal: serializar envelope: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(),
		bytes.NewReader(xmlPayload))
	if err != nil {
		return nil, fmt.Errorf("sal: criar request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", soapActionBase+"EmitirGuia")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("sal: timeout ou cancelamento: %w", ctx.Err())
		}
		return nil, fmt.Errorf("sal: chamada HTTP falhou: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // máx 1 MB
	if err != nil {
		return nil, fmt.Errorf("sal: ler resposta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sal: HTTP %d: %s", resp.StatusCode, truncate(rawBody, 300))
	}

	return parseResponse(rawBody)
}

func (c *Client) endpoint() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	if c.env == AppEnvProd {
		return soapURLProd
	}
	return soapURLTest
}

// simulate devolve uma emissão calculada localmente, para desenvolvimento.
func (c *Client) simulate(req emission.AuthorityRequest) (*emission.AuthorityResult, error) {
	cents := req.Amount.Mul(decimalHundred).IntPart()
	barcode, err := gps.Encode(gps.Fields{
		PaymentCode: req.PaymentCode,
		Competence:  req.Competence,
		AmountCents: cents,
		TaxpayerID:  req.TaxpayerID,
	})
	if err != nil {
		return nil, fmt.Errorf("sal: simulação: %w", err)
	}
	line, err := gps.DigitizableLine(barcode)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("codigo_barras", barcode).Msg("emissão SAL simulada (ambiente dev)")
	return &emission.AuthorityResult{
		Barcode:         barcode,
		DigitizableLine: line,
		DueDate:         req.Competence.DueDate(),
	}, nil
}

// ── Parse da resposta ─────────────────────────────────────────────────────────

// parseResponse desempacota o envelope SOAP e extrai a guia do XML embutido.
// O legado do SAL responde em ISO-8859-1; o CharsetReader cobre esse caso.
func parseResponse(rawBody []byte) (*emission.AuthorityResult, error) {
	dec := xml.NewDecoder(bytes.NewReader(rawBody))
	dec.CharsetReader = latin1CharsetReader

	var envResp soapResponseEnvelope
	if err := dec.Decode(&envResp); err != nil {
		return nil, fmt.Errorf("sal: parsear resposta SOAP: %w (corpo: %s)", err, truncate(rawBody, 300))
	}

	if envResp.Body.Fault != nil {
		return nil, fmt.Errorf("sal: SOAP Fault [%s]: %s",
			envResp.Body.Fault.FaultCode, envResp.Body.Fault.FaultString)
	}
	if envResp.Body.EmitirGuiaResponse == nil || envResp.Body.EmitirGuiaResponse.Result == "" {
		return nil, fmt.Errorf("sal: resposta vazia ou inesperada: %s", truncate(rawBody, 300))
	}

	return parseGuiaDocument(envResp.Body.EmitirGuiaResponse.Result)
}

// parseGuiaDocument lê o documento <guiaGPS> embutido na resposta.
func parseGuiaDocument(inner string) (*emission.AuthorityResult, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(inner); err != nil {
		return nil, fmt.Errorf("sal: parsear documento da guia: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("sal: documento da guia sem raiz")
	}

	if erro := childText(root, "erro"); erro != "" {
		return nil, fmt.Errorf("sal: emissão recusada: %s", erro)
	}

	barcode := childText(root, "codigoBarras")
	if len(barcode) != gps.BarcodeLength {
		return nil, fmt.Errorf("sal: código de barras ausente ou malformado na resposta: %q", barcode)
	}

	result := &emission.AuthorityResult{
		Barcode:         barcode,
		DigitizableLine: childText(root, "linhaDigitavel"),
	}
	if raw := childText(root, "dataVencimento"); raw != "" {
		due, err := time.Parse(legacyDateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("sal: data de vencimento inválida %q: %w", raw, err)
		}
		result.DueDate = due
	}
	return result, nil
}

// childText devolve o texto do primeiro filho com a tag dada, ignorando prefixo
// de namespace.
func childText(parent *etree.Element, tag string) string {
	for _, child := range parent.ChildElements() {
		t := child.Tag
		if i := strings.Index(t, ":"); i >= 0 {
			t = t[i+1:]
		}
		if t == tag {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

func latin1CharsetReader(charset string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	}
	return input, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
