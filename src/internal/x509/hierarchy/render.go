// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x509-cert-hierarchy/src/internal/x509/certs"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// EmptyForestMessage is rendered in place of an empty forest.
const EmptyForestMessage = "No certificates"

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchIndent    = "│   "
	lastIndent      = "    "
)

// DisplayName returns the subject common name of c, or its full subject
// when the certificate has no common name.
func DisplayName(c *X509) string {
	if cn := c.Cert.Subject.CommonName; cn != "" {
		return cn
	}
	return c.SubjectName()
}

// RenderASCIITree renders the forest as an indented tree with box-drawing
// connectors. Top-level nodes start at column zero.
//
// Every line reads "[role] name (serial 0x..)", suffixed with the validity
// state when the certificate is not valid at now.
//
// Parameters:
//   - f: Forest built from X.509 certificates
//   - now: Instant used to evaluate validity
//
// Returns:
//   - string: Tree representation, [EmptyForestMessage] for an empty forest
//
// Thread Safety: Safe for concurrent use.
func RenderASCIITree(f *Forest[*X509], now time.Time) string {
	if f.Empty() {
		return EmptyForestMessage + "\n"
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for _, root := range f.Roots() {
		writeTreeLine(buf, root, 0, now)
		writeTreeChildren(buf, root, 1, "", now)
	}

	return buf.String()
}

func writeTreeChildren(buf gc.Buffer, n *Node[*X509], depth int, prefix string, now time.Time) {
	children := n.Children()
	for i, child := range children {
		connector, indent := branchConnector, branchIndent
		if i == len(children)-1 {
			connector, indent = lastConnector, lastIndent
		}

		buf.WriteString(prefix)
		buf.WriteString(connector)
		writeTreeLine(buf, child, depth, now)
		writeTreeChildren(buf, child, depth+1, prefix+indent, now)
	}
}

func writeTreeLine(buf gc.Buffer, n *Node[*X509], depth int, now time.Time) {
	cert := n.Certificate()
	fmt.Fprintf(buf, "[%s] %s (serial %s)", RoleOf(n, depth), DisplayName(cert), x509certs.SerialHex(cert.Cert))
	if v := x509certs.ValidityAt(cert.Cert, now); v != x509certs.ValidityValid {
		fmt.Fprintf(buf, " [%s]", v)
	}
	buf.WriteByte('\n')
}

// RenderTable renders the forest as a markdown table, one row per
// certificate in pre-order.
//
// Thread Safety: Safe for concurrent use.
func RenderTable(f *Forest[*X509], now time.Time) string {
	if f.Empty() {
		return EmptyForestMessage + "\n"
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	table := tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Depth", "Role", "Subject", "Issuer", "Serial", "Valid Until", "Key"})

	var rows [][]string
	f.Walk(func(n *Node[*X509], depth int) bool {
		cert := n.Certificate()
		key := keyLabel(cert.Cert)

		validUntil := cert.Cert.NotAfter.UTC().Format(time.DateOnly)
		if v := x509certs.ValidityAt(cert.Cert, now); v != x509certs.ValidityValid {
			validUntil += " (" + string(v) + ")"
		}

		rows = append(rows, []string{
			strconv.Itoa(len(rows) + 1),
			strconv.Itoa(depth),
			RoleOf(n, depth).String(),
			DisplayName(cert),
			cert.Cert.Issuer.CommonName,
			x509certs.SerialHex(cert.Cert),
			validUntil,
			key,
		})
		return true
	})

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// JSONNode is the JSON form of a [Node].
type JSONNode struct {
	Role               string     `json:"role"`
	Subject            string     `json:"subject"`
	Issuer             string     `json:"issuer"`
	SerialNumber       string     `json:"serialNumber"`
	NotBefore          time.Time  `json:"notBefore"`
	NotAfter           time.Time  `json:"notAfter"`
	Validity           string     `json:"validity"`
	IsCA               bool       `json:"isCA"`
	PublicKey          string     `json:"publicKey"`
	SignatureAlgorithm string     `json:"signatureAlgorithm"`
	FingerprintSHA256  string     `json:"fingerprintSha256"`
	Children           []JSONNode `json:"children,omitempty"`
}

// JSONForest is the JSON document produced by [ToJSON].
type JSONForest struct {
	Timestamp string     `json:"timestamp"`
	Total     int        `json:"total"`
	FirstLeaf string     `json:"firstLeaf,omitempty"`
	Roots     []JSONNode `json:"roots"`
}

// ToJSON converts the forest to an indented JSON document with nested children.
//
// Parameters:
//   - f: Forest built from X.509 certificates
//   - now: Instant used to evaluate validity and stamp the document
//
// Returns:
//   - []byte: JSON document
//   - error: Error if marshaling fails
func ToJSON(f *Forest[*X509], now time.Time) ([]byte, error) {
	doc := JSONForest{
		Timestamp: now.UTC().Format(time.RFC3339),
		Total:     f.Len(),
		Roots:     make([]JSONNode, 0, len(f.Roots())),
	}

	if leaf, ok := f.FirstLeaf(); ok {
		doc.FirstLeaf = leaf.Certificate().SubjectName()
	}

	for _, root := range f.Roots() {
		doc.Roots = append(doc.Roots, toJSONNode(root, 0, now))
	}

	return json.MarshalIndent(doc, "", "  ")
}

func toJSONNode(n *Node[*X509], depth int, now time.Time) JSONNode {
	cert := n.Certificate()
	fp, _ := x509certs.Fingerprint(cert.Cert, x509certs.DigestSHA256)

	node := JSONNode{
		Role:               RoleOf(n, depth).String(),
		Subject:            cert.SubjectName(),
		Issuer:             cert.IssuerName(),
		SerialNumber:       x509certs.SerialHex(cert.Cert),
		NotBefore:          cert.Cert.NotBefore,
		NotAfter:           cert.Cert.NotAfter,
		Validity:           string(x509certs.ValidityAt(cert.Cert, now)),
		IsCA:               cert.Cert.IsCA,
		PublicKey:          keyLabel(cert.Cert),
		SignatureAlgorithm: cert.Cert.SignatureAlgorithm.String(),
		FingerprintSHA256:  fp,
	}

	for _, child := range n.Children() {
		node.Children = append(node.Children, toJSONNode(child, depth+1, now))
	}

	return node
}

// keyLabel renders the key algorithm, prefixed by its size when known.
func keyLabel(cert *x509.Certificate) string {
	algorithm, bits, _ := x509certs.PublicKeyInfo(cert)
	if bits > 0 {
		return fmt.Sprintf("%d-bit %s", bits, algorithm)
	}
	return algorithm
}
