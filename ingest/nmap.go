package ingest

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"

	nmap "github.com/Ullaakut/nmap/v3"

	"github.com/toposcope/toposcope/models"
)

// NmapSource discovers a topology by scanning targets with nmap. Each
// responsive host becomes a node; hosts are linked to a synthesized
// gateway node per /24 subnet, which is how a flat scan is usually drawn.
type NmapSource struct {
	// Targets are CIDR ranges or individual addresses to scan.
	Targets []string

	// Ports is the nmap port specification. Empty scans the default set.
	Ports string

	// ServiceDetection enables nmap service/version probing, which fills
	// node protocol properties at the cost of a slower scan.
	ServiceDetection bool
}

// Name returns the source name.
func (s *NmapSource) Name() string { return "nmap" }

// Load runs the scan and converts its results into a graph.
func (s *NmapSource) Load(ctx context.Context) (*models.Graph, error) {
	opts := []nmap.Option{
		nmap.WithTargets(s.Targets...),
	}
	if s.Ports != "" {
		opts = append(opts, nmap.WithPorts(s.Ports))
	}
	if s.ServiceDetection {
		opts = append(opts, nmap.WithServiceInfo())
	}

	scanner, err := nmap.NewScanner(ctx, opts...)
	if err != nil {
		return nil, &models.LoadError{Reason: "creating nmap scanner", Err: err}
	}

	result, warnings, err := scanner.Run()
	if warnings != nil && len(*warnings) > 0 {
		log.Printf("ingest: nmap warnings: %s", strings.Join(*warnings, "; "))
	}
	if err != nil {
		return nil, &models.LoadError{Reason: "running nmap scan", Err: err}
	}

	return graphFromScan(result, s.Targets), nil
}

// graphFromScan converts nmap results into nodes and links. Exported
// logic lives here rather than in Load so it can be tested without a
// scanner.
func graphFromScan(result *nmap.Run, targets []string) *models.Graph {
	g := models.NewGraph(fmt.Sprintf("scan of %s", strings.Join(targets, ", ")))
	g.Protocol = "ip"

	gateways := make(map[string]bool)
	for _, host := range result.Hosts {
		if host.Status.State != "up" || len(host.Addresses) == 0 {
			continue
		}
		addr := host.Addresses[0].Addr

		n := models.NewNode(addr, hostLabel(host))
		n.Kind = "host"
		n.Addr = addr
		n.Properties = hostProperties(host)
		g.AddNode(n)

		subnet := subnetID(addr)
		if subnet == "" {
			continue
		}
		if !gateways[subnet] {
			gateways[subnet] = true
			gw := models.NewNode(subnet, subnet)
			gw.Kind = "gateway"
			gw.Size = 2.0
			g.AddNode(gw)
		}
		g.AddLink(addr, subnet, 1.0)
	}
	return g
}

func hostLabel(host nmap.Host) string {
	if len(host.Hostnames) > 0 && host.Hostnames[0].Name != "" {
		return host.Hostnames[0].Name
	}
	return host.Addresses[0].Addr
}

func hostProperties(host nmap.Host) map[string]any {
	var services []string
	for _, port := range host.Ports {
		if port.State.State != "open" {
			continue
		}
		name := port.Service.Name
		if name == "" {
			name = fmt.Sprintf("%d/%s", port.ID, port.Protocol)
		}
		services = append(services, name)
	}
	if len(services) == 0 {
		return nil
	}
	return map[string]any{"services": services}
}

// subnetID names the /24 network an IPv4 address belongs to. Non-IPv4
// addresses yield no subnet grouping.
func subnetID(addr string) string {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return ""
	}
	v4 := ip.To4()
	return fmt.Sprintf("%d.%d.%d.0/24", v4[0], v4[1], v4[2])
}
