package pac

import (
	"encoding/json"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"jsString": jsString,
	"comment":  commentSafe,
}

// jsString renders s as a double-quoted JavaScript string literal.
func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// commentSafe keeps s on a single // comment line.
func commentSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ", "\u2028", " ", "\u2029", " ").Replace(s)
}

var scriptTmpl = template.Must(template.New("pac").Funcs(funcs).Parse(`// Generated by pacgen. Do not edit; re-run pacgen to refresh.
{{- range .Sources}}
// Source: {{comment .}}
{{- end}}
// Direct domain suffixes: {{len .Suffixes}}
// Direct CIDRs: {{len .CIDRs}}

var proxy = {{jsString .Proxy}};
var direct = "DIRECT";

var directSuffixes = {
{{- range $i, $s := .Suffixes}}{{if $i}},{{end}}
    {{jsString $s}}: 1
{{- end}}
};

var directCIDRs = [
{{- range $i, $c := .CIDRs}}{{if $i}},{{end}}
    {{jsString $c}}
{{- end}}
];

function FindProxyForURL(url, host) {
    host = host.toLowerCase();

    // 1. Plain hostnames (no dots) never leave the local network.
    if (isPlainHostName(host)) {
        return direct;
    }

    // 2. Any dot-separated suffix of the host in the table.
    var labels = host.split(".");
    for (var i = 0; i < labels.length; i++) {
        var suffix = labels.slice(i).join(".");
        if (Object.prototype.hasOwnProperty.call(directSuffixes, suffix)) {
            return direct;
        }
    }

    // 3. Dotted-quad hosts inside a listed network.
    if (/^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$/.test(host)) {
        for (var j = 0; j < directCIDRs.length; j++) {
            var parts = directCIDRs[j].split("/");
            if (isInNet(host, parts[0], convertMask(parseInt(parts[1], 10)))) {
                return direct;
            }
        }
    }

    return proxy;
}

function convertMask(bitCount) {
    var mask = [];
    for (var i = 0; i < 4; i++) {
        var n = Math.min(bitCount, 8);
        mask.push(256 - Math.pow(2, 8 - n));
        bitCount -= n;
    }
    return mask.join(".");
}
`))
