package frames

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// LoadConfigMap reads the data entries of a ConfigMap as a frame.
// Binary data entries are ignored.
func LoadConfigMap(
	ctx context.Context,
	client kubernetes.Interface,
	namespace string,
	name string,
) (map[string]any, error) {
	const errCtx = "loading configmap frame"

	cm, err := client.CoreV1().
		ConfigMaps(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s/%s: %w", errCtx, namespace, name, err,
		)
	}

	frame := make(map[string]any, len(cm.Data))
	for key, val := range cm.Data {
		frame[key] = val
	}

	return frame, nil
}
